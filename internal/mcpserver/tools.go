package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nguyentantai21042004/recap-flow/internal/llm"
	"github.com/nguyentantai21042004/recap-flow/internal/meeting"
	"github.com/nguyentantai21042004/recap-flow/internal/store"
	"github.com/nguyentantai21042004/recap-flow/internal/summarizer"
)

type summaryItem struct {
	ID          string    `json:"id"`
	MeetingID   string    `json:"meeting_id"`
	Title       string    `json:"title"`
	Format      string    `json:"format"`
	Language    string    `json:"language"`
	DetailLevel string    `json:"detail_level"`
	CreatedAt   time.Time `json:"created_at"`
}

type refineResponse struct {
	AssistantMessage string `json:"assistant_message"`
	IsSummaryUpdated bool   `json:"is_summary_updated"`
	UpdatedSummary   string `json:"updated_summary,omitempty"`
}

func (s *implServer) registerTools() {
	s.mcp.AddTool(mcp.NewTool("list_meetings",
		mcp.WithDescription("List ingested meetings, newest first."),
	), s.listMeetings)

	s.mcp.AddTool(mcp.NewTool("list_summaries",
		mcp.WithDescription("List generated meeting summaries, newest first."),
	), s.listSummaries)

	s.mcp.AddTool(mcp.NewTool("get_summary",
		mcp.WithDescription("Return one summary with its markdown text."),
		mcp.WithString("summary_id", mcp.Required(), mcp.Description("Summary id from list_summaries.")),
	), s.getSummary)

	s.mcp.AddTool(mcp.NewTool("summarize_meeting",
		mcp.WithDescription("Generate and store a new summary for a transcribed meeting. Omitted options use the stored preferences."),
		mcp.WithString("meeting_id", mcp.Required(), mcp.Description("Meeting id from list_meetings.")),
		mcp.WithString("format", mcp.Enum("structured", "bullet_points", "paragraph", "action_items")),
		mcp.WithString("language", mcp.Description("Summary language, en or fr.")),
		mcp.WithString("detail_level", mcp.Enum("brief", "medium", "detailed")),
		mcp.WithBoolean("include_timestamps"),
	), s.summarizeMeeting)

	s.mcp.AddTool(mcp.NewTool("refine_summary",
		mcp.WithDescription("Ask for a change to a summary. The stored summary is only replaced when the reply is a full revised summary."),
		mcp.WithString("summary_id", mcp.Required()),
		mcp.WithString("message", mcp.Required(), mcp.Description("What to change, in natural language.")),
		mcp.WithArray("chat_history",
			mcp.Description("Earlier turns of this refinement conversation, oldest first."),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"role":    map[string]any{"type": "string", "enum": []string{"user", "assistant"}},
					"content": map[string]any{"type": "string"},
				},
				"required": []string{"role", "content"},
			}),
		),
	), s.refineSummary)
}

func (s *implServer) listMeetings(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	meetings, err := s.meetings.ListMeetings(ctx)
	if err != nil {
		return toolError(err), nil
	}
	if meetings == nil {
		meetings = []store.Meeting{}
	}
	return jsonResult(meetings)
}

func (s *implServer) listSummaries(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summaries, err := s.meetings.ListSummaries(ctx)
	if err != nil {
		return toolError(err), nil
	}

	items := make([]summaryItem, 0, len(summaries))
	for _, sum := range summaries {
		items = append(items, summaryItem{
			ID:          sum.ID,
			MeetingID:   sum.MeetingID,
			Title:       sum.Title,
			Format:      sum.Format,
			Language:    sum.Language,
			DetailLevel: sum.DetailLevel,
			CreatedAt:   sum.CreatedAt,
		})
	}
	return jsonResult(items)
}

func (s *implServer) getSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("summary_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sum, err := s.meetings.GetSummary(ctx, id)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(sum)
}

func (s *implServer) summarizeMeeting(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	meetingID, err := req.RequireString("meeting_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	prefs, err := s.meetings.Preferences(ctx)
	if err != nil {
		return toolError(err), nil
	}
	defaults := meeting.OptionsFromPreferences(prefs)

	opts := summarizer.Options{
		Format:            summarizer.Format(req.GetString("format", string(defaults.Format))),
		Language:          summarizer.Language(req.GetString("language", string(defaults.Language))),
		DetailLevel:       summarizer.DetailLevel(req.GetString("detail_level", string(defaults.DetailLevel))),
		IncludeTimestamps: req.GetBool("include_timestamps", defaults.IncludeTimestamps),
	}

	s.logger.Info(ctx, "MCP summarize_meeting %s", meetingID)
	sum, err := s.meetings.Summarize(ctx, meeting.SummarizeInput{MeetingID: meetingID, Options: opts})
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(sum)
}

func (s *implServer) refineSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("summary_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	message, err := req.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	history, err := chatHistory(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := s.meetings.Refine(ctx, meeting.RefineInput{SummaryID: id, Message: message, History: history})
	if err != nil {
		return toolError(err), nil
	}

	out := refineResponse{
		AssistantMessage: res.AssistantMessage,
		IsSummaryUpdated: res.IsSummaryUpdated,
	}
	if res.IsSummaryUpdated {
		out.UpdatedSummary = res.UpdatedSummary
	}
	return jsonResult(out)
}

// chatHistory decodes the optional chat_history argument.
func chatHistory(req mcp.CallToolRequest) ([]llm.Message, error) {
	var args struct {
		ChatHistory []llm.Message `json:"chat_history"`
	}
	if err := req.BindArguments(&args); err != nil {
		return nil, fmt.Errorf("invalid chat_history: %w", err)
	}
	for i, m := range args.ChatHistory {
		if m.Role != llm.RoleUser && m.Role != llm.RoleAssistant {
			return nil, fmt.Errorf("chat_history[%d]: role must be user or assistant, got %q", i, m.Role)
		}
	}
	return args.ChatHistory, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(b)), nil
}

// toolError reports domain failures as tool results so the client model can read them.
func toolError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(err.Error())
}
