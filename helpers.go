package main

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
)

var (
	ErrBookNotFound = errors.New("book not found")
	ErrCacheMiss    = errors.New("cache entry not found")
)

type (
	ContextKey        string
	missingFieldError string
)

const (
	RequestIDPrefix         string     = "r"
	RequestIDContextKey     ContextKey = "request.id"
	RequestNumberContextKey ContextKey = "request.number"
)

func (m missingFieldError) Error() string {
	return string(m) + " is required"
}

// GetValueFromContext returns the value of a given key in the context
// if this key is not available, it returns an empty string.
func GetValueFromContext(ctx context.Context, contextKey ContextKey) string {
	if val := ctx.Value(contextKey); val != nil {
		return val.(string)
	}
	return ""
}

// ParseBookID converts a path parameter into a book identifier.
func ParseBookID(param string) (int64, error) {
	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("book id provided is not valid")
	}
	return id, nil
}

// ParsePositiveQueryParam returns the integer value of a query parameter,
// falling back to the default when the parameter is missing, malformed or
// below one.
func ParsePositiveQueryParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return def
	}
	return value
}

// DecodeCreateBookRequestBody reads the content of a book creation request.
func DecodeCreateBookRequestBody(r *http.Request, req *CreateBookRequest) error {
	if r.Body == nil {
		return errors.New("invalid create book request body")
	}
	return json.NewDecoder(r.Body).Decode(req)
}

// DecodeUpdateBookRequestBody reads the content of a book update request.
func DecodeUpdateBookRequestBody(r *http.Request, req *UpdateBookRequest) error {
	if r.Body == nil {
		return errors.New("invalid update book request body")
	}
	return json.NewDecoder(r.Body).Decode(req)
}

// ValidateCreateBookRequestBody checks if the content of a book creation
// request is valid. The image is checked separately by the handler since
// a missing image produces a plain text failure rather than an envelope.
func ValidateCreateBookRequestBody(req *CreateBookRequest) error {
	if len(req.Title) == 0 {
		return missingFieldError("title")
	}

	if len(req.Author) == 0 {
		return missingFieldError("author")
	}

	if len(req.Description) == 0 {
		return missingFieldError("description")
	}

	if req.StockQuantity < 0 {
		return errors.New("stockQuantity must not be negative")
	}

	if req.Price < 0 {
		return errors.New("price must not be negative")
	}

	return nil
}

// ValidateUpdateBookRequestBody checks if the content of a book update request is valid.
func ValidateUpdateBookRequestBody(req *UpdateBookRequest) error {
	if req.StockQuantity != nil && *req.StockQuantity < 0 {
		return errors.New("stockQuantity must not be negative")
	}

	if req.Price != nil && *req.Price < 0 {
		return errors.New("price must not be negative")
	}

	return nil
}

// GetRequestSourceIP helps find the source IP of the caller.
func GetRequestSourceIP(r *http.Request) string {
	// Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip
	}

	// Get IP from X-FORWARDED-FOR header
	ips := r.Header.Get("X-FORWARDED-FOR")
	splitIps := strings.Split(ips, ",")
	for _, ip := range splitIps {
		netIP = net.ParseIP(ip)
		if netIP != nil {
			return ip
		}
	}

	// Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return ""
	}
	netIP = net.ParseIP(ip)
	if netIP != nil {
		return ip
	}
	return ""
}

// IsAppRunningInDocker checks the existence of the .dockerenv
// file at the root directory and returns a boolean result. This
// helps know if the App is running in a docker container or not.
func IsAppRunningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return false
}
