package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/roadmap/pkg/app"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerProjectsResource(srv, svc)
	registerAreasResource(srv, svc)
	registerStatusesResource(srv, svc)
	registerDocumentResource(srv, svc)
	registerProjectTemplate(srv, svc)
}

func registerProjectsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"roadmap://projects",
		"Projects",
		mcp.WithResourceDescription("Every roadmap project with its dates, status and area."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		projects := svc.ListProjects(ctx, app.Query{Sort: app.SortStart})
		payload := map[string]any{
			"projects": projects,
			"count":    len(projects),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerAreasResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"roadmap://areas",
		"Areas",
		mcp.WithResourceDescription("Colour-coded areas projects can belong to."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"areas": svc.App.Areas(),
		})
	})
}

func registerStatusesResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"roadmap://statuses",
		"Statuses",
		mcp.WithResourceDescription("The ordered project status list."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"statuses": svc.App.Statuses(),
		})
	})
}

func registerDocumentResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"roadmap://document",
		"Roadmap Document",
		mcp.WithResourceDescription("The full roadmap in its export format."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return encodeResourceJSON(request.Params.URI, svc.Document(ctx))
	})
}

func registerProjectTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"roadmap://projects/{id}",
		"Project Details",
		mcp.WithTemplateDescription("A single project and its events."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := templateArg(request.Params.Arguments, "id")
		if id == "" {
			return nil, fmt.Errorf("project id is required")
		}

		p, events, err := svc.ProjectByID(ctx, id)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"project": p,
			"events":  events,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

// templateArg reads a URI template variable. Depending on the server version
// it arrives as a string or a one-element list.
func templateArg(args map[string]any, name string) string {
	switch v := args[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
