package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `visitdesk drives a sales rep's visit lifecycle: dashboard → live visit → review → follow-up.

Core concepts:
- Dashboard tabs: PROSPECTING (new leads), MAINTENANCE (existing accounts), PLANNED (the plan list).
- Visit: a planned, active or completed entry in the plan list. Status only moves forward.
- Session: the single running phone or in-person interaction. Only one screen is current.
- Review: opened when a session ends, or reopened from a customer with a deferred follow-up.
- Pending review: a customer whose review was closed with action "follow-up".

Default workflow:
1) Orient: get_state, list_customers.
2) Plan: schedule_visit, or start_visit / start_in_person to begin right away.
3) During the visit: get_live_feed; start_recording for in-person sessions.
4) end_visit opens the review: get_review_sheet, toggle_task, add_task, schedule_next_visit.
5) close_review with "follow-up" to defer or "completed" to finish.

Tools that do not apply to the current screen return the unchanged state.

Docs:
- visitdesk://docs/workflow
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "visitdesk://docs/workflow",
		Name:        "docs_workflow",
		Title:       "visitdesk workflow guide",
		Description: "Screens, transitions and the rules that tie visits, sessions and reviews together.",
		Content: `# visitdesk workflow

## Screens

Exactly one screen is current:

| Screen | Shown when |
|---|---|
| review | a review is open |
| active-visit | a session is running |
| dashboard | otherwise |

A session and a review are never open at the same time: ending a session is what opens its review.

## Transitions

| From | Tool | Effect |
|---|---|---|
| dashboard | schedule_visit | adds a planned visit |
| dashboard | start_visit | starts a session; visit_id carries a plan entry |
| dashboard | start_in_person | adds an active in-person visit, switches to PLANNED, starts its session |
| dashboard | start_planned_visit | promotes a planned visit to active and starts it |
| dashboard | open_review | reopens a deferred review |
| active-visit | end_visit | completes the plan entry (if any) and opens the review |
| review | schedule_next_visit | adds the next planned visit; the review stays open |
| review | close_review | follow-up marks the customer pending; completed clears it and returns to PROSPECTING |

## Existing customers

start_visit and start_in_person accept an explicit "existing" flag. Without it the customer
counts as existing only when the MAINTENANCE tab is selected. Coaching scores on the review
sheet are shown for existing customers only.

## Schedules

"when" accepts now / 现在, "2025-12-05 14:00", "2025-12-05", "+2d", or English phrases like
"tomorrow 3pm". Alternatively pass date and time separately.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
