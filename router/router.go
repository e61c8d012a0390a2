// Package router maps console paths such as "admin/broadcast/7" to screens
// and publishes route parameters to the active screen.
//
// Navigating between two paths of the same route (broadcast 5 to
// broadcast 7) only publishes new parameters: the screen stays and reloads.
// Navigating to another route opens a fresh parameter feed, closes the old
// one and publishes a Change so the shell can swap screens.
package router

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/deemkeen/herald/stream"
)

var ErrNoRoute = errors.New("no route")

const (
	RouteHome          = "home"
	RouteBroadcastList = "broadcast-list"
	RouteBroadcastEdit = "broadcast-edit"
	RouteProfile       = "profile"
)

type Route struct {
	Name    string
	Pattern string
	Title   string
	// Menu routes are listed on the home screen.
	Menu bool
}

// Table is the route table of the console: the admin section and the
// settings section.
var Table = []Route{
	{Name: RouteHome, Pattern: "", Title: "Home"},
	{Name: RouteBroadcastList, Pattern: "admin/broadcast", Title: "Broadcasts", Menu: true},
	{Name: RouteBroadcastEdit, Pattern: "admin/broadcast/:id", Title: "Edit broadcast"},
	{Name: RouteProfile, Pattern: "settings/profile", Title: "Profile", Menu: true},
}

type Params map[string]string

func (p Params) Get(key string) string {
	return p[key]
}

type Change struct {
	Route  Route
	Path   string
	Params Params
}

type Router struct {
	mu      sync.Mutex
	routes  []Route
	current Change
	history []string
	params  *stream.Feed[Params]
	changes *stream.Feed[Change]
}

// New returns a router positioned on the route matching "".
func New(routes []Route) *Router {
	r := &Router{routes: routes}
	home, params, ok := Match(routes, "")
	if !ok {
		home = Route{Name: RouteHome}
	}
	r.current = Change{Route: home, Path: "", Params: params}
	r.params = stream.NewFeedWith(params)
	r.changes = stream.NewFeedWith(r.current)
	return r
}

// Match finds the first route whose pattern matches path. ":name" segments
// capture parameters.
func Match(routes []Route, path string) (Route, Params, bool) {
	segs := split(path)
	for _, rt := range routes {
		pat := split(rt.Pattern)
		if len(pat) != len(segs) {
			continue
		}
		params := Params{}
		ok := true
		for i, p := range pat {
			if strings.HasPrefix(p, ":") {
				params[p[1:]] = segs[i]
				continue
			}
			if p != segs[i] {
				ok = false
				break
			}
		}
		if ok {
			return rt, params, true
		}
	}
	return Route{}, nil, false
}

func split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// Navigate moves to the path made of segments, e.g.
// Navigate("admin", "broadcast", 7).
func (r *Router) Navigate(segments ...any) error {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, strings.Trim(fmt.Sprint(s), "/"))
	}
	return r.navigate(strings.Join(parts, "/"), true)
}

// Back returns to the previous path, if any.
func (r *Router) Back() error {
	r.mu.Lock()
	if len(r.history) == 0 {
		r.mu.Unlock()
		return nil
	}
	prev := r.history[len(r.history)-1]
	r.history = r.history[:len(r.history)-1]
	r.mu.Unlock()
	return r.navigate(prev, false)
}

func (r *Router) navigate(path string, remember bool) error {
	path = strings.Trim(path, "/")
	rt, params, ok := Match(r.routes, path)
	if !ok {
		return fmt.Errorf("%w for %q", ErrNoRoute, path)
	}

	r.mu.Lock()
	if path == r.current.Path {
		r.mu.Unlock()
		return nil
	}
	if remember {
		r.history = append(r.history, r.current.Path)
	}
	sameRoute := rt.Name == r.current.Route.Name
	r.current = Change{Route: rt, Path: path, Params: params}
	change := r.current

	var old *stream.Feed[Params]
	if sameRoute {
		r.params.Publish(params)
	} else {
		old = r.params
		r.params = stream.NewFeedWith(params)
	}
	r.mu.Unlock()

	if old != nil {
		old.Close()
		r.changes.Publish(change)
	}
	return nil
}

func (r *Router) Current() Change {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Params subscribes to the parameters of the active route. The subscription
// ends when the route is left.
func (r *Router) Params() *stream.Subscription[Params] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.params.Subscribe(1)
}

// Changes subscribes to route changes, starting with the current route.
func (r *Router) Changes() *stream.Subscription[Change] {
	return r.changes.Subscribe(4)
}

// Close ends all subscriptions.
func (r *Router) Close() {
	r.mu.Lock()
	params := r.params
	r.mu.Unlock()
	params.Close()
	r.changes.Close()
}
