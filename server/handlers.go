// SPDX-License-Identifier: MIT

package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/katalvlaran/tourga/distance"
	"github.com/katalvlaran/tourga/ga"
	"github.com/katalvlaran/tourga/report/wshub"
	"github.com/katalvlaran/tourga/store"
	"github.com/katalvlaran/tourga/tour"
)

// RandomCities asks the server to generate the instance.
type RandomCities struct {
	N      int     `json:"n" binding:"gte=2,lte=10000"`
	Width  float64 `json:"width" binding:"gt=0"`
	Height float64 `json:"height" binding:"gt=0"`
	Seed   int64   `json:"seed"`
}

// CreateRunRequest is the body of POST /runs. Exactly one of Cities and
// Random must be set. Config fields left out keep the manager defaults.
type CreateRunRequest struct {
	Label  string          `json:"label"`
	Cities []distance.City `json:"cities"`
	Random *RandomCities   `json:"random"`
	Config *ga.Config      `json:"config"`
}

// API binds a Manager (and optional hub and history) to gin routes.
type API struct {
	Manager *Manager
	Hub     *wshub.Hub
	Store   *store.Store
}

// NewRouter returns a gin engine with recovery and every route registered.
func (a API) NewRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	a.Register(r)
	return r
}

// Register mounts the API on r.
func (a API) Register(r gin.IRouter) {
	r.GET("/health", a.health)
	r.POST("/runs", a.createRun)
	r.GET("/runs", a.listRuns)
	r.GET("/runs/:id", a.getRun)
	r.POST("/runs/:id/stop", a.stopRun)
	r.DELETE("/runs/:id", a.deleteRun)
	r.GET("/history", a.history)
	if a.Hub != nil {
		r.GET("/ws", gin.WrapH(a.Hub))
	}
}

func (a API) health(c *gin.Context) {
	body := gin.H{"status": "healthy", "runs": len(a.Manager.List())}
	if a.Hub != nil {
		body["connections"] = a.Hub.Count()
	}
	c.JSON(http.StatusOK, body)
}

func (a API) createRun(c *gin.Context) {
	defaults := a.Manager.Defaults()
	req := CreateRunRequest{Config: &defaults}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cities := req.Cities
	switch {
	case req.Random != nil && len(cities) > 0:
		c.JSON(http.StatusBadRequest, gin.H{"error": "cities and random are mutually exclusive"})
		return
	case req.Random != nil:
		cities = distance.RandomCities(req.Random.N, req.Random.Width, req.Random.Height, tour.NewRNG(req.Random.Seed))
	}

	snap, err := a.Manager.Create(req.Label, req.Config, cities)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, snap)
}

func (a API) listRuns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"runs": a.Manager.List()})
}

func (a API) getRun(c *gin.Context) {
	id := c.Param("id")
	snap, err := a.Manager.Get(id)
	if err == nil {
		c.JSON(http.StatusOK, snap)
		return
	}
	if a.Store != nil && errors.Is(err, ErrRunNotFound) {
		rec, serr := a.Store.Get(c.Request.Context(), id)
		if serr == nil {
			c.JSON(http.StatusOK, rec)
			return
		}
		err = serr
	}
	writeError(c, err)
}

func (a API) stopRun(c *gin.Context) {
	if err := a.Manager.Stop(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"ok": true})
}

func (a API) deleteRun(c *gin.Context) {
	if err := a.Manager.Delete(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a API) history(c *gin.Context) {
	if a.Store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "history disabled"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}
	recs, err := a.Store.List(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": recs})
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ga.ErrInvalidInput), errors.Is(err, ga.ErrInvalidConfig), errors.Is(err, ErrTooManyCities):
		status = http.StatusBadRequest
	case errors.Is(err, ErrRunNotFound), errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrTooManyRuns):
		status = http.StatusTooManyRequests
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
