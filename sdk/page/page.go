// Package page models the browser page the SDK runs against: its current
// location, its history and navigation. Outside a browser the location is
// held in memory (StaticPage) and navigation can open the system browser
// (BrowserPage).
package page

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/skratchdot/open-golang/open"
)

// Page is the location/history collaborator used by SSO login and by
// GetToken's query-token path.
type Page interface {
	// Href returns the full current location.
	Href() string
	// Query returns the parsed query string of the current location.
	Query() url.Values
	// Path returns the path of the current location.
	Path() string
	// Assign navigates to target.
	Assign(ctx context.Context, target string) error
	// ReplaceState rewrites the current location to path without navigating,
	// dropping its query string.
	ReplaceState(path string)
}

// StaticPage keeps the location in memory and records navigations.
type StaticPage struct {
	mu          sync.RWMutex
	location    *url.URL
	navigations []string
}

// NewStaticPage parses href as the initial location.
func NewStaticPage(href string) (*StaticPage, error) {
	u, err := url.Parse(href)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}
	return &StaticPage{location: u}, nil
}

func (p *StaticPage) Href() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.location.String()
}

func (p *StaticPage) Query() url.Values {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.location.Query()
}

func (p *StaticPage) Path() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.location.Path
}

// Assign moves the location to target and records it.
func (p *StaticPage) Assign(_ context.Context, target string) error {
	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("parse navigation target: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.location = p.location.ResolveReference(u)
	p.navigations = append(p.navigations, target)
	return nil
}

func (p *StaticPage) ReplaceState(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	next := *p.location
	next.Path = path
	next.RawPath = ""
	next.RawQuery = ""
	next.Fragment = ""
	p.location = &next
}

// Navigations lists every target passed to Assign, oldest first.
func (p *StaticPage) Navigations() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]string(nil), p.navigations...)
}

// openURL is a test seam for open.Run.
var openURL = open.Run

// BrowserPage is a StaticPage whose navigations are also opened in the
// system browser.
type BrowserPage struct {
	*StaticPage
}

func NewBrowserPage(href string) (*BrowserPage, error) {
	sp, err := NewStaticPage(href)
	if err != nil {
		return nil, err
	}
	return &BrowserPage{StaticPage: sp}, nil
}

func (p *BrowserPage) Assign(ctx context.Context, target string) error {
	if err := p.StaticPage.Assign(ctx, target); err != nil {
		return err
	}
	if err := openURL(target); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	return nil
}
