// Package gate decides, per request, whether to serve a page or redirect.
//
// Decisions come from an ordered table of rules; the first rule whose matcher
// accepts the request wins. The table knows nothing about the HTTP framework
// and can be evaluated directly in tests.
package gate

import (
	"net/url"
	"path"
	"strings"
)

// Action is what the gate asks the transport to do.
type Action int

const (
	Allow Action = iota
	Redirect
)

func (a Action) String() string {
	if a == Redirect {
		return "redirect"
	}
	return "allow"
}

// Request is the part of an inbound request the gate needs.
type Request struct {
	Path          string
	RawQuery      string
	Authenticated bool
}

// Decision is the gate's verdict. Location is set for redirects.
type Decision struct {
	Action   Action
	Location string
	Rule     string
}

// Rule pairs a matcher with the decision it produces.
type Rule struct {
	Name   string
	Match  func(g *Gate, r Request) bool
	Decide func(g *Gate, r Request) Decision
}

// Config lists the routes the gate classifies.
type Config struct {
	LoginPath     string
	DashboardPath string
	// Bypass prefixes skip the gate entirely (API, probes, framework paths).
	Bypass []string
	// Public prefixes are reachable without a session.
	Public []string
	// AuthRoutes bounce authenticated users to the dashboard.
	AuthRoutes []string
	// StaticExtensions are served without checks.
	StaticExtensions []string
}

// DefaultConfig is the route layout of the portal.
func DefaultConfig() Config {
	return Config{
		LoginPath:     "/auth/login",
		DashboardPath: "/dashboard",
		Bypass:        []string{"/api", "/health", "/metrics", "/swagger", "/static"},
		Public: []string{
			"/auth/login",
			"/auth/signup",
			"/auth/reset-password",
			"/legal",
			"/api/auth/signup",
			"/api/auth/reset-password",
		},
		AuthRoutes: []string{"/auth/login", "/auth/signup", "/auth/reset-password"},
		StaticExtensions: []string{
			".css", ".js", ".map", ".ico", ".png", ".jpg", ".jpeg", ".gif",
			".svg", ".webp", ".woff", ".woff2", ".ttf", ".txt", ".xml",
		},
	}
}

// Gate evaluates requests against its rule table.
type Gate struct {
	cfg    Config
	static map[string]struct{}
	rules  []Rule
}

// New builds a gate with the default rule table.
func New(cfg Config) *Gate {
	g := &Gate{cfg: cfg, static: make(map[string]struct{}, len(cfg.StaticExtensions))}
	for _, ext := range cfg.StaticExtensions {
		g.static[strings.ToLower(ext)] = struct{}{}
	}
	g.rules = DefaultRules()
	return g
}

// DefaultRules is the decision table, in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:   "static-asset",
			Match:  func(g *Gate, r Request) bool { return g.IsStatic(r.Path) || g.IsBypassed(r.Path) },
			Decide: allow,
		},
		{
			Name:   "signed-in-on-auth-route",
			Match:  func(g *Gate, r Request) bool { return r.Authenticated && g.IsAuthRoute(r.Path) },
			Decide: toDashboard,
		},
		{
			Name:  "anonymous-on-protected-route",
			Match: func(g *Gate, r Request) bool { return !r.Authenticated && !g.IsPublic(r.Path) },
			Decide: func(g *Gate, r Request) Decision {
				return Decision{Action: Redirect, Location: g.LoginURL(r.Path, r.RawQuery)}
			},
		},
		{
			Name:  "anonymous-on-root",
			Match: func(g *Gate, r Request) bool { return !r.Authenticated && r.Path == "/" },
			Decide: func(g *Gate, r Request) Decision {
				return Decision{Action: Redirect, Location: g.cfg.LoginPath}
			},
		},
		{
			Name:   "signed-in-on-root",
			Match:  func(g *Gate, r Request) bool { return r.Authenticated && r.Path == "/" },
			Decide: toDashboard,
		},
	}
}

func allow(*Gate, Request) Decision { return Decision{Action: Allow} }

func toDashboard(g *Gate, _ Request) Decision {
	return Decision{Action: Redirect, Location: g.cfg.DashboardPath}
}

// Evaluate returns the first matching rule's decision, or Allow.
func (g *Gate) Evaluate(r Request) Decision {
	if r.Path == "" {
		r.Path = "/"
	}
	for _, rule := range g.rules {
		if rule.Match(g, r) {
			d := rule.Decide(g, r)
			d.Rule = rule.Name
			return d
		}
	}
	return Decision{Action: Allow, Rule: "default"}
}

// LoginURL is the login page with the original path and query as callbackUrl.
func (g *Gate) LoginURL(p, rawQuery string) string {
	target := p
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	return g.cfg.LoginPath + "?callbackUrl=" + url.QueryEscape(target)
}

func (g *Gate) IsStatic(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	if ext == "" {
		return false
	}
	_, ok := g.static[ext]
	return ok
}

func (g *Gate) IsBypassed(p string) bool  { return matchAny(g.cfg.Bypass, p) }
func (g *Gate) IsPublic(p string) bool    { return matchAny(g.cfg.Public, p) }
func (g *Gate) IsAuthRoute(p string) bool { return matchAny(g.cfg.AuthRoutes, p) }

// matchAny reports whether p equals a prefix or sits below it as a path segment.
func matchAny(prefixes []string, p string) bool {
	for _, prefix := range prefixes {
		if prefix == "/" {
			if p == "/" {
				return true
			}
			continue
		}
		if p == prefix || strings.HasPrefix(p, strings.TrimSuffix(prefix, "/")+"/") {
			return true
		}
	}
	return false
}
