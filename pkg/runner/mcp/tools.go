package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/glyph"
	"tableflip.dev/roadmap/pkg/viewport"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListProjectsTool(srv, svc)
	registerGetProjectTool(srv, svc)
	registerAddProjectTool(srv, svc)
	registerUpdateProjectTool(srv, svc)
	registerDeleteProjectTool(srv, svc)
	registerListEventsTool(srv, svc)
	registerAddEventTool(srv, svc)
	registerUpdateEventTool(srv, svc)
	registerDeleteEventTool(srv, svc)
	registerRenderTool(srv, svc)
	registerUndoTool(srv, svc)
	registerSummaryTool(srv, svc)
}

func sortKeys() []string {
	out := []string{"none"}
	for _, k := range app.SortKeys() {
		out = append(out, string(k))
	}
	return out
}

func registerListProjectsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_projects",
		mcp.WithDescription("List roadmap projects, optionally filtered and sorted."),
		mcp.WithString("lead",
			mcp.Description("Only projects led by this person."),
		),
		mcp.WithString("status",
			mcp.Description("Only projects with this status id."),
		),
		mcp.WithString("area",
			mcp.Description("Only projects in this area, by name or colour."),
		),
		mcp.WithString("query",
			mcp.Description("Case-insensitive text matched against name, lead and comment."),
		),
		mcp.WithString("sort",
			mcp.Description("Row order."),
			mcp.Enum(sortKeys()...),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sort, err := app.ParseSortKey(request.GetString("sort", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		q := app.Query{
			Lead:   strings.TrimSpace(request.GetString("lead", "")),
			Status: strings.TrimSpace(request.GetString("status", "")),
			Area:   strings.TrimSpace(request.GetString("area", "")),
			Search: strings.TrimSpace(request.GetString("query", "")),
			Sort:   sort,
		}
		results := svc.ListProjects(ctx, q)
		return toJSONResult(map[string]any{
			"projects": results,
			"count":    len(results),
		})
	})
}

func registerGetProjectTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_project",
		mcp.WithDescription("Fetch a project and its events."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Project identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		p, events, err := svc.ProjectByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"project": p,
			"events":  events,
		})
	})
}

func projectFields(required bool) []mcp.ToolOption {
	name := []mcp.PropertyOption{mcp.Description("Project name.")}
	if required {
		name = append(name, mcp.Required())
	}
	return []mcp.ToolOption{
		mcp.WithString("name", name...),
		mcp.WithString("lead",
			mcp.Description("Person leading the project."),
		),
		mcp.WithString("status",
			mcp.Description("Status id, see the roadmap://statuses resource."),
		),
		mcp.WithString("area",
			mcp.Description("Area name or colour, see the roadmap://areas resource."),
		),
		mcp.WithString("start",
			mcp.Description("Start as 2024-03-05, 2024-W12 (ISO week) or 2024-03 (month)."),
		),
		mcp.WithString("end",
			mcp.Description("End as 2024-03-05, 2024-W12 (ISO week) or 2024-03 (month)."),
		),
		mcp.WithString("comment",
			mcp.Description("Free text comment."),
		),
	}
}

func registerAddProjectTool(srv *server.MCPServer, svc *Service) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Create a project. Dates default to today."),
	}, projectFields(true)...)
	tool := mcp.NewTool("add_project", opts...)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var in ProjectInput
		if err := request.BindArguments(&in); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.AddProject(ctx, in)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateProjectTool(srv *server.MCPServer, svc *Service) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Change some fields of a project. Omitted fields are kept."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Project identifier."),
		),
	}, projectFields(false)...)
	tool := mcp.NewTool("update_project", opts...)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		var in ProjectInput
		if err := request.BindArguments(&in); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.UpdateProject(ctx, id, in)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteProjectTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_project",
		mcp.WithDescription("Delete a project. Its events are kept as standalone events."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Project identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteProject(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"deleted": id})
	})
}

func registerListEventsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_events",
		mcp.WithDescription("List events for a project, the standalone events, or all events."),
		mcp.WithString("project",
			mcp.Description("Optional project identifier."),
		),
		mcp.WithBoolean("standalone",
			mcp.Description("Only events not attached to a project."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		project := strings.TrimSpace(request.GetString("project", ""))
		results := svc.ListEvents(ctx, project, request.GetBool("standalone", false))
		return toJSONResult(map[string]any{
			"project": project,
			"events":  results,
			"count":   len(results),
		})
	})
}

func eventFields(required bool) []mcp.ToolOption {
	name := []mcp.PropertyOption{mcp.Description("Event name.")}
	if required {
		name = append(name, mcp.Required())
	}
	return []mcp.ToolOption{
		mcp.WithString("name", name...),
		mcp.WithString("project",
			mcp.Description("Project identifier. Empty makes the event standalone."),
		),
		mcp.WithString("symbol",
			mcp.Description("Marker symbol."),
			mcp.Enum(glyph.Keys()...),
		),
		mcp.WithString("start",
			mcp.Description("Start as 2024-03-05, 2024-W12 (ISO week) or 2024-03 (month)."),
		),
		mcp.WithString("end",
			mcp.Description("Optional end for a duration event. Empty clears it."),
		),
		mcp.WithString("comment",
			mcp.Description("Free text comment."),
		),
	}
}

func registerAddEventTool(srv *server.MCPServer, svc *Service) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Create an event. The start defaults to today."),
	}, eventFields(true)...)
	tool := mcp.NewTool("add_event", opts...)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var in EventInput
		if err := request.BindArguments(&in); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.AddEvent(ctx, in)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateEventTool(srv *server.MCPServer, svc *Service) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Change some fields of an event. Omitted fields are kept."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Event identifier."),
		),
	}, eventFields(false)...)
	tool := mcp.NewTool("update_event", opts...)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		var in EventInput
		if err := request.BindArguments(&in); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.UpdateEvent(ctx, id, in)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteEventTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_event",
		mcp.WithDescription("Delete an event."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Event identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteEvent(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"deleted": id})
	})
}

func registerRenderTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"render_timeline",
		mcp.WithDescription("Lay the roadmap out and return the header buckets, rows and event markers with their pixel geometry."),
		mcp.WithString("view",
			mcp.Description("View preset. Empty keeps the range start at zoom 1."),
			mcp.Enum(viewport.PresetNames()...),
		),
		mcp.WithNumber("zoom",
			mcp.Description("Zoom factor applied after the preset."),
		),
		mcp.WithNumber("columns",
			mcp.Description("Width of the timeline in character cells."),
			mcp.Min(10),
			mcp.Max(1000),
		),
		mcp.WithString("sort",
			mcp.Description("Row order. Sorting by status groups rows."),
			mcp.Enum(sortKeys()...),
		),
		mcp.WithBoolean("compact",
			mcp.Description("Pack rows tightly."),
		),
		mcp.WithString("focus",
			mcp.Description("Event identifier to centre the window on."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var in RenderInput
		if err := request.BindArguments(&in); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		fv, err := svc.Render(ctx, in)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(fv)
	})
}

func registerUndoTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"undo",
		mcp.WithDescription("Revert the last change to projects and events."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := svc.Undo(ctx); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"remaining": svc.App.UndoDepth()})
	})
}

func registerSummaryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"summary",
		mcp.WithDescription("Count projects and events by status and area."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return toJSONResult(svc.Summary(ctx))
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
