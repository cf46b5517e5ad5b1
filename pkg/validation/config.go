package validation

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// ValidateListenAddress checks that addr is a host:port pair with a usable port.
func ValidateListenAddress(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < 0 || n > 65535 {
		return fmt.Errorf("invalid port %q in listen address %q", port, addr)
	}
	return nil
}

// ValidateRateLimit returns warnings for rate limit settings that will not
// behave as intended.
func ValidateRateLimit(perSecond float64, burst int) []string {
	var warnings []string
	if perSecond < 0 {
		warnings = append(warnings, fmt.Sprintf("Rate limit %.2f is negative - rate limiting disabled", perSecond))
	}
	if perSecond > 0 && burst < 1 {
		warnings = append(warnings, fmt.Sprintf("Rate burst %d is below 1 - the default burst will be used", burst))
	}
	return warnings
}

// ValidateTimeouts returns warnings for server timeouts that are unset or
// shorter than a chart render is likely to take.
func ValidateTimeouts(read, write time.Duration) []string {
	var warnings []string
	if read <= 0 {
		warnings = append(warnings, "Read timeout is not set - slow clients can hold connections open")
	}
	if write <= 0 {
		warnings = append(warnings, "Write timeout is not set - slow clients can hold connections open")
	} else if write < time.Second {
		warnings = append(warnings, fmt.Sprintf("Write timeout %s is shorter than a chart render may take", write))
	}
	return warnings
}
