package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
)

const instructions = `LiftLog stores structured workout sessions (blocks, exercises, sets, goals).
Use validate_workout to check a session document before submitting it: the
schema and exercise-linking checks are hard failures, HIIT work/rest anomalies
are warnings. The get_* tools read what has already been stored.`

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// New creates an MCP server backed by ds.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	h := &handlers{ds: ds, log: log}

	s := server.NewMCPServer("LiftLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions(instructions),
	)
	s.AddTools(
		server.ServerTool{Tool: toolValidateWorkout, Handler: h.validateWorkout},
		server.ServerTool{Tool: toolGetWorkouts, Handler: h.getWorkouts},
		server.ServerTool{Tool: toolGetWorkout, Handler: h.getWorkout},
		server.ServerTool{Tool: toolGetGoals, Handler: h.getGoals},
		server.ServerTool{Tool: toolGetTrainingSummary, Handler: h.getTrainingSummary},
	)
	s.AddResources(
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
		server.ServerResource{Resource: resWeeklyVolume, Handler: h.weeklyVolume},
		server.ServerResource{Resource: resGoals, Handler: h.allGoals},
	)
	return s
}
