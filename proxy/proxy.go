// Package proxy forwards gallery traffic to the catalog backend and to the
// 3D asset file server, and rewrites absolute file-server URLs into paths
// served through the proxy.
package proxy

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// FileServerIP is the address of the asset file server on the lab network.
const FileServerIP = "10.213.19.130"

// FilePrefix is the path under which the file server exposes its assets.
const FilePrefix = "/sanweifile"

// DefaultFileServerHosts lists the file-server origins that the backend
// embeds in cover and preview URLs.
var DefaultFileServerHosts = []string{
	"http://127.0.0.1:9001",
	"http://" + FileServerIP + ":9001",
}

// RewriteFileURL removes the file-server origin from u so the asset is
// fetched through the proxy (http://127.0.0.1:9001/sanweifile/a.glb becomes
// /sanweifile/a.glb). When no hosts are given DefaultFileServerHosts is
// used. An empty URL stays empty.
func RewriteFileURL(u string, hosts ...string) string {
	if u == "" {
		return ""
	}
	if len(hosts) == 0 {
		hosts = DefaultFileServerHosts
	}
	for _, h := range hosts {
		u = strings.Replace(u, h, "", 1)
	}
	return u
}

// NewPrefixProxy returns a reverse proxy to target that removes strip from
// the front of the request path before forwarding. The outgoing Host header
// is set to the target's host.
func NewPrefixProxy(target *url.URL, strip string) *httputil.ReverseProxy {
	p := httputil.NewSingleHostReverseProxy(target)
	director := p.Director
	p.Director = func(r *http.Request) {
		if strip != "" && strings.HasPrefix(r.URL.Path, strip) {
			r.URL.Path = strings.TrimPrefix(r.URL.Path, strip)
			r.URL.RawPath = strings.TrimPrefix(r.URL.RawPath, strip)
			if r.URL.Path == "" {
				r.URL.Path = "/"
			}
		}
		director(r)
		r.Host = target.Host
	}
	return p
}

// NewFileProxy returns a reverse proxy that forwards asset requests to the
// file server unchanged.
func NewFileProxy(target *url.URL) *httputil.ReverseProxy {
	return NewPrefixProxy(target, "")
}

// ParseTarget parses a proxy target, which must be an absolute http(s) URL.
func ParseTarget(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing proxy target %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("proxy target %q must be an http(s) URL", raw)
	}
	if u.Host == "" {
		return nil, errors.Errorf("proxy target %q has no host", raw)
	}
	return u, nil
}
