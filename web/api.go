// Package web serves an in-memory fixture of the broadcast API, for local
// development of the console and for client tests.
package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/deemkeen/herald/domain"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const maxBodyBytes = 64 << 10

type Options struct {
	Token             string
	User              domain.User
	Navbar            []domain.NavbarProjectData
	Seed              []domain.Broadcast
	RequestsPerSecond int
}

// DefaultOptions is the fixture `herald devapi` starts with.
func DefaultOptions(token string) Options {
	return Options{
		Token: token,
		User:  domain.User{ID: 1, Username: "admin", Fullname: "Dev Admin", Email: "admin@localhost", Admin: true},
		Navbar: []domain.NavbarProjectData{
			{Key: "PROJ", Name: "Project", Type: domain.NavbarTypeProject, Favorite: true},
			{Key: "PROJ", Name: "Project", WorkflowName: "build", Type: domain.NavbarTypeWorkflow},
			{Key: "INFRA", Name: "Infrastructure", Type: domain.NavbarTypeProject},
		},
		Seed: []domain.Broadcast{
			{Title: "Welcome", Content: "This is the development API.\nData lives in memory only.", Level: domain.LevelInfo},
			{Title: "Maintenance", Content: "Workers restart tonight at 22:00.", Level: domain.LevelWarning, ProjectKey: "INFRA"},
		},
		RequestsPerSecond: 50,
	}
}

type api struct {
	store *memStore
}

func NewRouter(opts Options) *gin.Engine {
	store := newMemStore(opts.User)
	store.navbar = append(store.navbar, opts.Navbar...)
	for _, b := range opts.Seed {
		store.create(b)
	}
	a := &api{store: store}

	rps := opts.RequestsPerSecond
	if rps < 1 {
		rps = 50
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(RateLimitMiddleware(NewRateLimiter(rate.Limit(rps), rps*2)))
	r.Use(MaxBytesMiddleware(maxBodyBytes))

	r.GET("/mon/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	auth := r.Group("/", TokenMiddleware(opts.Token))
	auth.GET("/user/me", a.getMe)
	auth.GET("/navbar", a.getNavbar)
	auth.GET("/broadcast", a.listBroadcasts)
	auth.POST("/broadcast", a.adminOnly, a.createBroadcast)
	auth.GET("/broadcast/:id", a.getBroadcast)
	auth.PUT("/broadcast/:id", a.adminOnly, a.updateBroadcast)
	auth.DELETE("/broadcast/:id", a.adminOnly, a.deleteBroadcast)
	auth.POST("/broadcast/:id/mark", a.markBroadcast)

	return r
}

// Serve runs the router on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("dev api listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (a *api) adminOnly(c *gin.Context) {
	if u := a.store.currentUser(); !u.Admin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden"})
		return
	}
	c.Next()
}

func (a *api) getMe(c *gin.Context) {
	c.JSON(http.StatusOK, a.store.currentUser())
}

func (a *api) getNavbar(c *gin.Context) {
	c.JSON(http.StatusOK, a.store.navbarData())
}

func (a *api) listBroadcasts(c *gin.Context) {
	c.JSON(http.StatusOK, a.store.list())
}

func (a *api) getBroadcast(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	b, found := a.store.get(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "broadcast not found"})
		return
	}
	c.JSON(http.StatusOK, b)
}

func (a *api) createBroadcast(c *gin.Context) {
	var b domain.Broadcast
	if err := c.ShouldBindJSON(&b); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body: " + err.Error()})
		return
	}
	if b.Level == "" {
		b.Level = domain.LevelInfo
	}
	if err := b.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, a.store.create(b))
}

func (a *api) updateBroadcast(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var b domain.Broadcast
	if err := c.ShouldBindJSON(&b); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body: " + err.Error()})
		return
	}
	if b.ID != id {
		c.JSON(http.StatusBadRequest, gin.H{"message": "broadcast id does not match path"})
		return
	}
	if err := b.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	updated, found := a.store.update(b)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "broadcast not found"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (a *api) deleteBroadcast(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if !a.store.delete(id) {
		c.JSON(http.StatusNotFound, gin.H{"message": "broadcast not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *api) markBroadcast(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if !a.store.markRead(id) {
		c.JSON(http.StatusNotFound, gin.H{"message": "broadcast not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid broadcast id"})
		return 0, false
	}
	return id, true
}
