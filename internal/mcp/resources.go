package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

var (
	resRecentWorkouts = mcp.NewResource(
		"liftlog://recent_workouts",
		"Recent Workouts",
		mcp.WithResourceDescription("Workout sessions from the last 14 days"),
		mcp.WithMIMEType("application/json"),
	)
	resWeeklyVolume = mcp.NewResource(
		"liftlog://weekly_volume",
		"Weekly Volume",
		mcp.WithResourceDescription("Weekly training summary for the last 8 weeks"),
		mcp.WithMIMEType("application/json"),
	)
	resGoals = mcp.NewResource(
		"liftlog://goals",
		"Goals",
		mcp.WithResourceDescription("All recorded exercise goals, soonest target first"),
		mcp.WithMIMEType("application/json"),
	)
)

func (h *handlers) recentWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	end := time.Now()
	sessions, err := h.ds.QuerySessions(ctx, end.AddDate(0, 0, -14), end, "")
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, sessions)
}

func (h *handlers) weeklyVolume(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	end := time.Now()
	periods, err := h.ds.GetTrainingSummary(ctx, end.AddDate(0, 0, -8*7), end, "1 week")
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, periods)
}

func (h *handlers) allGoals(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	goals, err := h.ds.QueryGoals(ctx, nil)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, goals)
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
