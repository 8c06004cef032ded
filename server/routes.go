package server

import (
	"sort"
	"strings"

	"github.com/kbukum/restkit/logger"
)

var systemPaths = map[string]bool{
	"/health": true,
	"/live":   true,
	"/ready":  true,
	"/info":   true,
}

func systemPathList() []string {
	out := make([]string, 0, len(systemPaths))
	for p := range systemPaths {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Route describes one registered Gin route.
type Route struct {
	Method  string
	Path    string
	Handler string
	System  bool
}

// Routes lists the Gin routes: API routes by path first, then system routes.
func (s *Server) Routes() []Route {
	ginRoutes := s.engine.Routes()
	routes := make([]Route, 0, len(ginRoutes))
	for _, r := range ginRoutes {
		routes = append(routes, Route{
			Method:  r.Method,
			Path:    r.Path,
			Handler: formatHandlerName(r.Handler),
			System:  systemPaths[r.Path],
		})
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].System != routes[j].System {
			return !routes[i].System
		}
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return methodOrder(routes[i].Method) < methodOrder(routes[j].Method)
	})
	return routes
}

func (s *Server) logRoutes() {
	for _, r := range s.Routes() {
		s.log.Debug("Route registered", map[string]interface{}{
			logger.FieldMethod: r.Method,
			logger.FieldPath:   r.Path,
			"handler":          r.Handler,
			"system":           r.System,
		})
	}
}

// formatHandlerName trims Gin's fully qualified handler name,
// "example.com/svc/api.(*Users).List-fm" becomes "Users.List".
func formatHandlerName(full string) string {
	name := strings.TrimSuffix(full, "-fm")
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.NewReplacer("(*", "", ")", "").Replace(name)

	parts := strings.Split(name, ".")
	for len(parts) > 1 && strings.HasPrefix(parts[len(parts)-1], "func") {
		parts = parts[:len(parts)-1]
	}
	if len(parts) > 1 && strings.ToLower(parts[0]) == parts[0] {
		parts = parts[1:]
	}
	return strings.Join(parts, ".")
}

func methodOrder(method string) int {
	switch method {
	case "GET":
		return 0
	case "POST":
		return 1
	case "PUT":
		return 2
	case "PATCH":
		return 3
	case "DELETE":
		return 4
	default:
		return 5
	}
}
