// Package mcpserver exposes WindowAnchor's save/list/restore/switch
// operations as MCP tools, using the go-sdk NewServer/AddTool
// tool-registration pattern.
package mcpserver

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/marvintrvl/windowanchor/internal/model"
)

const (
	ServerName    = "windowanchor"
	ServerVersion = "0.1.0"
)

// Operations is the set of core-engine entry points the MCP tools call
// into. Kept as an interface so the server can be constructed and tested
// without a live Windows desktop.
type Operations interface {
	Save(ctx context.Context, name string, saveFiles bool) (model.WorkspaceSnapshot, error)
	List(ctx context.Context) ([]string, error)
	Restore(ctx context.Context, name string) (matched, total int, err error)
	Switch(ctx context.Context, name string) (status string, err error)
	Delete(ctx context.Context, name string) error
}

// Server is the MCP server for WindowAnchor automation.
type Server struct {
	mcpServer *mcpsdk.Server
	ops       Operations
}

// NewServer constructs a Server backed by ops and registers its tools.
func NewServer(ops Operations) *Server {
	s := &Server{
		ops: ops,
		mcpServer: mcpsdk.NewServer(
			&mcpsdk.Implementation{Name: ServerName, Version: ServerVersion},
			nil,
		),
	}
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "save_workspace",
		Description: "Capture the current desktop layout — window positions, monitors, and (optionally) open files — as a named workspace snapshot.",
	}, s.handleSave)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_workspaces",
		Description: "List every saved workspace snapshot by name.",
	}, s.handleList)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "restore_workspace",
		Description: "Restore a saved workspace: reposition already-open windows and launch/open anything missing.",
	}, s.handleRestore)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "switch_workspace",
		Description: "Gracefully close every current window, wait for the desktop to empty, then restore the named workspace.",
	}, s.handleSwitch)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "delete_workspace",
		Description: "Delete a saved workspace snapshot by name.",
	}, s.handleDelete)
}

type saveArgs struct {
	Name      string `json:"name"`
	SaveFiles bool   `json:"save_files"`
}

func (s *Server) handleSave(ctx context.Context, req *mcpsdk.CallToolRequest, args saveArgs) (*mcpsdk.CallToolResult, any, error) {
	if args.Name == "" {
		return nil, nil, fmt.Errorf("name is required")
	}
	snap, err := s.ops.Save(ctx, args.Name, args.SaveFiles)
	if err != nil {
		return nil, nil, fmt.Errorf("saving workspace %q: %w", args.Name, err)
	}
	return textResult(fmt.Sprintf("saved workspace %q with %d entries", snap.Name, len(snap.Entries))), nil, nil
}

type listArgs struct{}

func (s *Server) handleList(ctx context.Context, req *mcpsdk.CallToolRequest, args listArgs) (*mcpsdk.CallToolResult, any, error) {
	names, err := s.ops.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing workspaces: %w", err)
	}
	if len(names) == 0 {
		return textResult("no saved workspaces"), nil, nil
	}
	msg := "workspaces:"
	for _, n := range names {
		msg += "\n- " + n
	}
	return textResult(msg), nil, nil
}

type nameArgs struct {
	Name string `json:"name"`
}

func (s *Server) handleRestore(ctx context.Context, req *mcpsdk.CallToolRequest, args nameArgs) (*mcpsdk.CallToolResult, any, error) {
	if args.Name == "" {
		return nil, nil, fmt.Errorf("name is required")
	}
	matched, total, err := s.ops.Restore(ctx, args.Name)
	if err != nil {
		return nil, nil, fmt.Errorf("restoring workspace %q: %w", args.Name, err)
	}
	return textResult(fmt.Sprintf("restored %q: matched %d/%d entries", args.Name, matched, total)), nil, nil
}

func (s *Server) handleSwitch(ctx context.Context, req *mcpsdk.CallToolRequest, args nameArgs) (*mcpsdk.CallToolResult, any, error) {
	if args.Name == "" {
		return nil, nil, fmt.Errorf("name is required")
	}
	status, err := s.ops.Switch(ctx, args.Name)
	if err != nil {
		return nil, nil, fmt.Errorf("switching to workspace %q: %w", args.Name, err)
	}
	return textResult(status), nil, nil
}

func (s *Server) handleDelete(ctx context.Context, req *mcpsdk.CallToolRequest, args nameArgs) (*mcpsdk.CallToolResult, any, error) {
	if args.Name == "" {
		return nil, nil, fmt.Errorf("name is required")
	}
	if err := s.ops.Delete(ctx, args.Name); err != nil {
		return nil, nil, fmt.Errorf("deleting workspace %q: %w", args.Name, err)
	}
	return textResult(fmt.Sprintf("deleted workspace %q", args.Name)), nil, nil
}

func textResult(text string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: text}},
	}
}
