// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the task list as tools for AI assistants.
package mcp

import (
	"context"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/valter-silva-au/todo-cli/internal/core"
	"github.com/valter-silva-au/todo-cli/pkg/models"
)

// Server wraps a TaskManager and exposes its operations as MCP tools.
type Server struct {
	server  *gomcp.Server
	taskMgr core.TaskManager
}

// NewServer creates a new MCP server over taskMgr.
func NewServer(taskMgr core.TaskManager, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{taskMgr: taskMgr}
	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "todo", Version: version},
		nil,
	)
	s.registerTools()

	return s
}

// Run serves on stdio, blocking until the client disconnects or ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type addTaskInput struct {
	Name           string `json:"name" jsonschema:"the task name; duplicates are allowed"`
	CompletionTime string `json:"completion_time" jsonschema:"free-text completion time, stored as given"`
}

type nameInput struct {
	Name string `json:"name" jsonschema:"the name of the active task(s) to act on"`
}

type renameTaskInput struct {
	Name    string `json:"name" jsonschema:"the current task name"`
	NewName string `json:"new_name" jsonschema:"the new task name"`
}

type rescheduleTaskInput struct {
	Name           string `json:"name" jsonschema:"the task name"`
	CompletionTime string `json:"completion_time" jsonschema:"the new free-text completion time"`
}

type listTasksInput struct {
	Collection string `json:"collection,omitempty" jsonschema:"which list to read: active (default) or completed"`
}

type outcomeOutput struct {
	Message  string `json:"message"`
	Affected int    `json:"affected"`
}

type taskOutput struct {
	Position       int    `json:"position"`
	Name           string `json:"name"`
	CompletionTime string `json:"completion_time"`
}

type listTasksOutput struct {
	Tasks []taskOutput `json:"tasks"`
	Count int          `json:"count"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "add_task",
		Description: "Append a task to the active list.",
	}, s.handleAddTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "remove_task",
		Description: "Remove active tasks with the given name.",
	}, s.handleRemoveTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "rename_task",
		Description: "Rename an active task.",
	}, s.handleRenameTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "reschedule_task",
		Description: "Change the completion time of an active task.",
	}, s.handleRescheduleTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "complete_task",
		Description: "Move active tasks with the given name to the completed list.",
	}, s.handleCompleteTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_tasks",
		Description: "List active or completed tasks in insertion order, numbered from 1.",
	}, s.handleListTasks)
}

// --- Tool handlers ---

func (s *Server) handleAddTask(_ context.Context, _ *gomcp.CallToolRequest, input addTaskInput) (*gomcp.CallToolResult, outcomeOutput, error) {
	return s.dispatch(core.Command{Kind: core.KindAdd, Args: []string{input.Name, input.CompletionTime}})
}

func (s *Server) handleRemoveTask(_ context.Context, _ *gomcp.CallToolRequest, input nameInput) (*gomcp.CallToolResult, outcomeOutput, error) {
	return s.dispatch(core.Command{Kind: core.KindRemove, Args: []string{input.Name}})
}

func (s *Server) handleRenameTask(_ context.Context, _ *gomcp.CallToolRequest, input renameTaskInput) (*gomcp.CallToolResult, outcomeOutput, error) {
	return s.dispatch(core.Command{Kind: core.KindRename, Args: []string{input.Name, input.NewName}})
}

func (s *Server) handleRescheduleTask(_ context.Context, _ *gomcp.CallToolRequest, input rescheduleTaskInput) (*gomcp.CallToolResult, outcomeOutput, error) {
	return s.dispatch(core.Command{Kind: core.KindReschedule, Args: []string{input.Name, input.CompletionTime}})
}

func (s *Server) handleCompleteTask(_ context.Context, _ *gomcp.CallToolRequest, input nameInput) (*gomcp.CallToolResult, outcomeOutput, error) {
	return s.dispatch(core.Command{Kind: core.KindComplete, Args: []string{input.Name}})
}

func (s *Server) handleListTasks(_ context.Context, _ *gomcp.CallToolRequest, input listTasksInput) (*gomcp.CallToolResult, listTasksOutput, error) {
	kind := core.KindListActive
	switch models.CollectionKind(input.Collection) {
	case "", models.CollectionActive:
	case models.CollectionCompleted:
		kind = core.KindListCompleted
	default:
		return errorResult(fmt.Sprintf("invalid collection %q: must be active or completed", input.Collection)), listTasksOutput{}, nil
	}

	out, err := s.taskMgr.Dispatch(core.Command{Kind: kind, Show: true})
	if err != nil {
		return errorResult(fmt.Sprintf("listing tasks: %s", err)), listTasksOutput{}, nil
	}

	result := listTasksOutput{Tasks: make([]taskOutput, 0, out.Affected)}
	for pos, t := range out.Tasks {
		result.Tasks = append(result.Tasks, taskOutput{
			Position:       pos,
			Name:           t.Name,
			CompletionTime: t.CompletionTime,
		})
	}
	result.Count = len(result.Tasks)

	return nil, result, nil
}

// dispatch runs a mutating command. Every failure, recoverable or not, is
// reported to the client as a tool error rather than a protocol error.
func (s *Server) dispatch(cmd core.Command) (*gomcp.CallToolResult, outcomeOutput, error) {
	out, err := s.taskMgr.Dispatch(cmd)
	if err != nil {
		return errorResult(fmt.Sprintf("%s: %s", cmd.Kind, err)), outcomeOutput{}, nil
	}
	return nil, outcomeOutput{Message: out.Message, Affected: out.Affected}, nil
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
