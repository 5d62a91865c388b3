package handler

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
)

// HomeHandler answers GET / with the service name and its route index.
type HomeHandler struct {
	name    string
	version string
	routes  func() []*echo.Route
}

func NewHomeHandler(name, version string, routes func() []*echo.Route) *HomeHandler {
	return &HomeHandler{name: name, version: version, routes: routes}
}

type routeInfo struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

type homeResponse struct {
	Service string      `json:"service"`
	Version string      `json:"version"`
	Docs    string      `json:"docs"`
	Routes  []routeInfo `json:"routes"`
}

func (h *HomeHandler) Index(c echo.Context) error {
	var routes []routeInfo
	for _, r := range h.routes() {
		if r.Method == echo.RouteNotFound {
			continue
		}
		routes = append(routes, routeInfo{Method: r.Method, Path: r.Path})
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})

	return c.JSON(http.StatusOK, homeResponse{
		Service: h.name,
		Version: h.version,
		Docs:    "/swagger/index.html",
		Routes:  routes,
	})
}
