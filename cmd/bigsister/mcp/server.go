package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bigsister-app/bigsister/internal/core/api"
	"github.com/bigsister-app/bigsister/internal/core/models"
)

// SessionSummary represents a session in the list view
type SessionSummary struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	IsActive  bool   `json:"is_active"`
}

// SessionDetail represents a session with its full transcript
type SessionDetail struct {
	SessionID string          `json:"session_id"`
	Name      string          `json:"name"`
	Messages  []MessageDetail `json:"messages"`
}

// MessageDetail represents a single message in a session
type MessageDetail struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// JournalSummary represents a journal entry in search results
type JournalSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Mood      string `json:"mood"`
	Timestamp string `json:"timestamp"`
	Snippet   string `json:"snippet,omitempty"`
	HasPlace  bool   `json:"has_place"`
}

// StartServer starts the MCP server against the given service URL.
// Credentials come from BIGSISTER_USERNAME and BIGSISTER_PIN.
func StartServer(serverURL string) error {
	username := os.Getenv("BIGSISTER_USERNAME")
	pin := os.Getenv("BIGSISTER_PIN")
	if username == "" || pin == "" {
		return fmt.Errorf("set BIGSISTER_USERNAME and BIGSISTER_PIN")
	}

	client, err := api.New(serverURL)
	if err != nil {
		return fmt.Errorf("failed to build client: %w", err)
	}
	if _, err := client.Login(context.Background(), username, pin); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	s := server.NewMCPServer(
		"BigSister",
		"1.0.0",
	)

	listTool := mcp.NewTool("list_sessions",
		mcp.WithDescription("List the user's BigSister conversation sessions, newest first"),
		mcp.WithNumber("limit",
			mcp.Description("Max sessions to return (default: 20)")),
	)
	s.AddTool(listTool, makeListSessionsHandler(client))

	detailTool := mcp.NewTool("get_session",
		mcp.WithDescription("Retrieve the full transcript of one conversation session"),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Session ID to retrieve")),
	)
	s.AddTool(detailTool, makeGetSessionHandler(client))

	journalTool := mcp.NewTool("search_journal",
		mcp.WithDescription("Search the user's journal entries by text and mood"),
		mcp.WithString("query",
			mcp.Description("Text to match against entry titles and content")),
		mcp.WithString("mood",
			mcp.Description("Filter by mood (Happy, Calm, Anxious, Sad, Angry, Neutral)")),
		mcp.WithNumber("limit",
			mcp.Description("Max entries to return (default: 20)")),
	)
	s.AddTool(journalTool, makeSearchJournalHandler(client))

	return server.ServeStdio(s)
}

func makeListSessionsHandler(client *api.Client) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Limit int `json:"limit,omitempty"`
		}
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		limit := args.Limit
		if limit == 0 {
			limit = 20
		}

		sessions, err := client.ListSessions(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		if len(sessions) > limit {
			sessions = sessions[:limit]
		}

		out := make([]SessionSummary, 0, len(sessions))
		for _, sess := range sessions {
			out = append(out, SessionSummary{
				SessionID: sess.ID,
				Name:      sess.Name,
				CreatedAt: sess.CreatedAt.Format("2006-01-02 15:04"),
				IsActive:  sess.IsActive,
			})
		}
		return jsonResult(out)
	}
}

func makeGetSessionHandler(client *api.Client) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			SessionID string `json:"session_id"`
		}
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.SessionID == "" {
			return mcp.NewToolResultError("session_id is required"), nil
		}

		messages, err := client.SessionMessages(ctx, args.SessionID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("fetch failed: %v", err)), nil
		}

		detail := SessionDetail{SessionID: args.SessionID}
		for _, msg := range messages {
			detail.Messages = append(detail.Messages, MessageDetail{
				Role:      string(msg.Role),
				Content:   msg.Content,
				Timestamp: msg.Timestamp.Format("2006-01-02 15:04"),
			})
		}
		return jsonResult(detail)
	}
}

func makeSearchJournalHandler(client *api.Client) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Query string `json:"query,omitempty"`
			Mood  string `json:"mood,omitempty"`
			Limit int    `json:"limit,omitempty"`
		}
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		limit := args.Limit
		if limit == 0 {
			limit = 20
		}

		entries, err := client.ListJournal(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}

		var out []JournalSummary
		for _, entry := range entries {
			if args.Mood != "" && !strings.EqualFold(string(entry.Mood), args.Mood) {
				continue
			}
			if args.Query != "" && !entryMatches(entry, args.Query) {
				continue
			}
			out = append(out, JournalSummary{
				ID:        entry.ID,
				Title:     entry.Title,
				Mood:      string(entry.Mood),
				Timestamp: entry.Timestamp.Format("2006-01-02 15:04"),
				Snippet:   snippet(entry.Content, 200),
				HasPlace:  entry.Location != nil,
			})
			if len(out) >= limit {
				break
			}
		}
		return jsonResult(out)
	}
}

func entryMatches(entry models.JournalEntry, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(entry.Title), q) ||
		strings.Contains(strings.ToLower(entry.Content), q)
}

func snippet(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
