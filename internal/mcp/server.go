package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/visitdesk/internal/domain/customer"
	"github.com/rpggio/visitdesk/internal/metrics"
)

// Version is reported to MCP clients.
const Version = "0.1.0"

// Config contains server configuration.
type Config struct {
	Controller Controller
	Directory  customer.Directory
	Activity   ActivityService
	Schedules  ScheduleParser
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "visitdesk",
		Version: Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(toolMetricsMiddleware(cfg.Metrics))
	server.AddReceivingMiddleware(trafficLoggingMiddleware(logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	h := NewHandler(cfg.Controller, cfg.Directory, cfg.Activity, cfg.Schedules)
	registerTools(server, h)

	return server
}

func registerTools(server *sdkmcp.Server, h *Handler) {
	// Dashboard
	addTool(server, "get_state", "Get the current screen, tab, running session, open review, plan list and pending reviews", h.GetState)
	addTool(server, "select_tab", "Switch the dashboard tab", h.SelectTab)
	addTool(server, "list_customers", "List existing customers and prospects with their pending-review flag", h.ListCustomers)
	addTool(server, "get_customer", "Get one customer's details", h.GetCustomer)
	addTool(server, "list_visits", "List planned, active and completed visits", h.ListVisits)

	// Visits
	addTool(server, "schedule_visit", "Add a planned phone or in-person visit to the plan", h.ScheduleVisit)
	addTool(server, "start_visit", "Start a visit session immediately, optionally carrying a planned visit id", h.StartVisit)
	addTool(server, "start_in_person", "Record an in-person visit starting now and open its session", h.StartInPerson)
	addTool(server, "start_planned_visit", "Start a visit from the plan list", h.StartPlannedVisit)
	addTool(server, "start_recording", "Start recording a waiting in-person session", h.StartRecording)
	addTool(server, "get_live_feed", "Get the running session's transcript, coaching tips and talk time", h.GetLiveFeed)
	addTool(server, "end_visit", "End the running session and open its review", h.EndVisit)

	// Review
	addTool(server, "get_review_sheet", "Get the open review's follow-up tasks, next-visit draft and coaching scores", h.GetReviewSheet)
	addTool(server, "toggle_task", "Select or unselect a follow-up task", h.ToggleTask)
	addTool(server, "add_task", "Add a custom follow-up task, optionally with an attachment", h.AddTask)
	addTool(server, "schedule_next_visit", "Plan the next visit from the open review without closing it", h.ScheduleNextVisit)
	addTool(server, "close_review", "Close the open review as follow-up, completed, or without action", h.CloseReview)
	addTool(server, "open_review", "Reopen a customer's deferred review", h.OpenReview)

	// Audit
	addTool(server, "recent_activity", "List recent lifecycle events, newest first", h.RecentActivity)
}

func addTool[In, Out any](server *sdkmcp.Server, name, description string, fn func(context.Context, In) (Out, error)) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        name,
		Description: description,
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
		out, err := fn(ctx, in)
		if err != nil {
			return nil, nil, toolError(err)
		}
		result, err := jsonResult(out)
		return result, nil, err
	})
}

func jsonResult(v any) (*sdkmcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil
}
