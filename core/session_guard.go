package core

import (
	"net/http"
	"time"
)

// redirectDelay gives in-flight UI feedback time to render before the
// user is sent back to the login screen.
const redirectDelay = 1500 * time.Millisecond

// SessionGuard watches every outgoing API call, not only the auth ones.
// A 401 from any endpoint while a session exists forces the expiry
// transition on the manager and schedules a single redirect to the login
// entry point. It implements http.RoundTripper so it can sit on the
// shared HTTP client.
type SessionGuard struct {
	next     http.RoundTripper
	expire   func() bool
	redirect func()
	delay    time.Duration
}

// NewSessionGuard wraps next (http.DefaultTransport when nil). expire
// must report whether a live session was actually invalidated, which is
// what keeps a burst of concurrent 401s from redirecting more than once.
func NewSessionGuard(next http.RoundTripper, expire func() bool, redirect func()) *SessionGuard {
	if next == nil {
		next = http.DefaultTransport
	}
	return &SessionGuard{
		next:     next,
		expire:   expire,
		redirect: redirect,
		delay:    redirectDelay,
	}
}

func (g *SessionGuard) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := g.next.RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	if g.expire() && g.redirect != nil {
		time.AfterFunc(g.delay, g.redirect)
	}
	return resp, err
}
