// Package release checks GitHub for newer published versions.
package release

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

var (
	ErrDevBuild   = errors.New("development build has no release version")
	ErrBadVersion = errors.New("not a semantic version")
)

const (
	defaultBaseURL = "https://api.github.com"
	defaultOwner   = "psytests"
	defaultRepo    = "psytests"
)

// Release is the subset of the GitHub release payload we use.
type Release struct {
	Tag    string  `json:"tag_name"`
	URL    string  `json:"html_url"`
	Assets []Asset `json:"assets"`
}

// Asset is one downloadable file attached to a release.
type Asset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
}

// Asset returns the attached file with the given name.
func (r *Release) Asset(name string) (Asset, bool) {
	for _, a := range r.Assets {
		if a.Name == name {
			return a, true
		}
	}
	return Asset{}, false
}

// Checker queries the releases API and applies updates.
type Checker struct {
	client  *http.Client
	baseURL string
	owner   string
	repo    string

	// executable resolves the binary replaced by Update.
	executable func() (string, error)
}

type Option func(*Checker)

// WithBaseURL points the checker at a different API root.
func WithBaseURL(u string) Option {
	return func(c *Checker) { c.baseURL = u }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.client.Timeout = d }
}

// WithExecutable makes Update replace path instead of the running binary.
func WithExecutable(path string) Option {
	return func(c *Checker) {
		c.executable = func() (string, error) { return path, nil }
	}
}

// WithRepository overrides the owner/repo pair.
func WithRepository(owner, repo string) Option {
	return func(c *Checker) {
		c.owner = owner
		c.repo = repo
	}
}

// NewChecker creates a Checker for the psytests repository.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: defaultBaseURL,
		owner:   defaultOwner,
		repo:    defaultRepo,

		executable: runningExecutable,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Latest returns the most recent published release.
func (c *Checker) Latest(ctx context.Context) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", strings.TrimRight(c.baseURL, "/"), c.owner, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	var rel Release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	if rel.Tag == "" {
		return nil, errors.New("release has no tag")
	}
	return &rel, nil
}

// Status is the outcome of comparing the running version with the latest
// release.
type Status struct {
	Current         string
	Latest          string
	URL             string
	UpdateAvailable bool
}

// Check fetches the latest release and compares it with current.
func (c *Checker) Check(ctx context.Context, current string) (*Status, error) {
	if isDevel(current) {
		return nil, ErrDevBuild
	}
	rel, err := c.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch latest release: %w", err)
	}
	newer, err := Compare(current, rel.Tag)
	if err != nil {
		return nil, err
	}
	return &Status{
		Current:         current,
		Latest:          rel.Tag,
		URL:             rel.URL,
		UpdateAvailable: newer,
	}, nil
}

// Compare reports whether latest is a newer version than current. Either
// may omit the leading "v".
func Compare(current, latest string) (bool, error) {
	if isDevel(current) {
		return false, ErrDevBuild
	}
	cur, lat := canonical(current), canonical(latest)
	if !semver.IsValid(cur) {
		return false, fmt.Errorf("%w: %q", ErrBadVersion, current)
	}
	if !semver.IsValid(lat) {
		return false, fmt.Errorf("%w: %q", ErrBadVersion, latest)
	}
	return semver.Compare(lat, cur) > 0, nil
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

func isDevel(v string) bool {
	return v == "" || v == "(devel)"
}
