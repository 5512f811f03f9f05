// Package ftp reads weather logs published on an FTP server.
package ftp

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net"
	"net/url"
	"time"

	"github.com/couchcryptid/wind-window-finder/internal/adapter/file"
	"github.com/couchcryptid/wind-window-finder/internal/domain"
	goftp "github.com/jlaffaye/ftp"
)

const defaultPort = "21"

// Location is a parsed ftp:// URL.
type Location struct {
	Addr     string // host:port
	User     string
	Password string
	Path     string
}

// ParseURL splits an ftp://[user[:password]@]host[:port]/path URL. Missing
// credentials default to anonymous login.
func ParseURL(raw string) (Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("parse ftp url: %w", err)
	}
	if u.Scheme != "ftp" {
		return Location{}, fmt.Errorf("parse ftp url: unsupported scheme %q", u.Scheme)
	}
	if u.Hostname() == "" {
		return Location{}, errors.New("parse ftp url: missing host")
	}
	if u.Path == "" || u.Path == "/" {
		return Location{}, errors.New("parse ftp url: missing file path")
	}

	port := u.Port()
	if port == "" {
		port = defaultPort
	}
	loc := Location{
		Addr:     net.JoinHostPort(u.Hostname(), port),
		User:     "anonymous",
		Password: "anonymous",
		Path:     u.Path,
	}
	if u.User != nil {
		loc.User = u.User.Username()
		if p, ok := u.User.Password(); ok {
			loc.Password = p
		}
	}
	return loc, nil
}

// Source streams a weather log over FTP.
// It implements pipeline.RecordSource.
type Source struct {
	loc       Location
	delimiter string
	timeout   time.Duration
}

// NewSource creates a Source for the given ftp:// URL.
func NewSource(rawURL, delimiter string, timeout time.Duration) (*Source, error) {
	loc, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}
	return &Source{loc: loc, delimiter: delimiter, timeout: timeout}, nil
}

// Records connects on the first pull and parses the file as it downloads.
func (s *Source) Records(ctx context.Context) iter.Seq2[domain.DailyRecord, error] {
	return func(yield func(domain.DailyRecord, error) bool) {
		conn, err := goftp.Dial(s.loc.Addr, goftp.DialWithContext(ctx), goftp.DialWithTimeout(s.timeout))
		if err != nil {
			yield(domain.DailyRecord{}, fmt.Errorf("ftp dial: %w", err))
			return
		}
		defer conn.Quit()

		if err := conn.Login(s.loc.User, s.loc.Password); err != nil {
			yield(domain.DailyRecord{}, fmt.Errorf("ftp login: %w", err))
			return
		}

		resp, err := conn.Retr(s.loc.Path)
		if err != nil {
			yield(domain.DailyRecord{}, fmt.Errorf("ftp retr %s: %w", s.loc.Path, err))
			return
		}
		defer resp.Close()

		for rec, err := range file.Scan(ctx, resp, s.delimiter) {
			if !yield(rec, err) {
				return
			}
		}
	}
}
