package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/corkboard-app/corkboard/internal/config"
	"github.com/corkboard-app/corkboard/internal/constants"
	"github.com/corkboard-app/corkboard/internal/logger"
	"github.com/corkboard-app/corkboard/internal/models"
	"github.com/corkboard-app/corkboard/internal/search"
)

type CardServer struct {
	cfg       *config.Config
	repo      *models.CardRepository
	engine    *search.Engine
	mcpServer *server.MCPServer
}

func NewCardServer(cfg *config.Config, repo *models.CardRepository, engine *search.Engine) *CardServer {
	cs := &CardServer{
		cfg:    cfg,
		repo:   repo,
		engine: engine,
	}

	cs.mcpServer = server.NewMCPServer(
		"corkboard",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	cs.registerTools()
	cs.registerResources()
	cs.registerPrompts()

	return cs
}

func (s *CardServer) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *CardServer) registerTools() {
	addCardTool := mcp.NewTool("add_card",
		mcp.WithDescription("Add a new card to the canvas"),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The front text of the card"),
		),
		mcp.WithString("back_text",
			mcp.Description("Optional back text, searchable but hidden until the card is flipped"),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tags for the card (optional)"),
		),
		mcp.WithNumber("x",
			mcp.Description("Horizontal canvas position (default: 0)"),
		),
		mcp.WithNumber("y",
			mcp.Description("Vertical canvas position (default: 0)"),
		),
		mcp.WithString("color",
			mcp.Description("Card color (default: configured default color)"),
		),
	)
	s.mcpServer.AddTool(addCardTool, s.handleAddCard)

	searchTool := mcp.NewTool("search_cards",
		mcp.WithDescription("Search cards with a boolean query. Supports AND/OR/NOT, quoted phrases, * wildcards, parentheses and NEAR/N proximity. An empty query clears the filter."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Boolean search query, e.g. 'python not tutorial*' or '\"machine learning\" near/5 notes'"),
		),
	)
	s.mcpServer.AddTool(searchTool, s.handleSearchCards)

	getCardTool := mcp.NewTool("get_card",
		mcp.WithDescription("Get a specific card by ID"),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("The ID of the card to retrieve"),
		),
	)
	s.mcpServer.AddTool(getCardTool, s.handleGetCard)

	listCardsTool := mcp.NewTool("list_cards",
		mcp.WithDescription("List cards with optional limit"),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of cards to return"),
		),
		mcp.WithNumber("offset",
			mcp.Description("Number of cards to skip"),
		),
	)
	s.mcpServer.AddTool(listCardsTool, s.handleListCards)

	updateCardTool := mcp.NewTool("update_card",
		mcp.WithDescription("Update an existing card"),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("The ID of the card to update"),
		),
		mcp.WithString("text",
			mcp.Description("New front text for the card (optional)"),
		),
		mcp.WithString("back_text",
			mcp.Description("New back text for the card (optional)"),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tags to set for the card (optional, replaces existing tags)"),
		),
		mcp.WithString("color",
			mcp.Description("New color for the card (optional)"),
		),
	)
	s.mcpServer.AddTool(updateCardTool, s.handleUpdateCard)

	moveCardTool := mcp.NewTool("move_card",
		mcp.WithDescription("Move a card to a new position on the canvas"),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("The ID of the card to move"),
		),
		mcp.WithNumber("x",
			mcp.Required(),
			mcp.Description("New horizontal position"),
		),
		mcp.WithNumber("y",
			mcp.Required(),
			mcp.Description("New vertical position"),
		),
	)
	s.mcpServer.AddTool(moveCardTool, s.handleMoveCard)

	deleteCardTool := mcp.NewTool("delete_card",
		mcp.WithDescription("Delete a card by ID"),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("The ID of the card to delete"),
		),
	)
	s.mcpServer.AddTool(deleteCardTool, s.handleDeleteCard)

	listTagsTool := mcp.NewTool("list_tags",
		mcp.WithDescription("List all tags on the canvas with usage counts"),
	)
	s.mcpServer.AddTool(listTagsTool, s.handleListTags)

	updateTagsTool := mcp.NewTool("update_card_tags",
		mcp.WithDescription("Update the tags for a specific card"),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("The ID of the card to update tags for"),
		),
		mcp.WithString("tags",
			mcp.Required(),
			mcp.Description("Comma-separated tags to set for the card (replaces existing tags)"),
		),
	)
	s.mcpServer.AddTool(updateTagsTool, s.handleUpdateCardTags)
}

func (s *CardServer) registerResources() {
	recentResource := mcp.NewResource("cards://recent",
		"Recent Cards",
		mcp.WithResourceDescription("Get the most recently created cards"),
		mcp.WithMIMEType("application/json"),
	)
	s.mcpServer.AddResource(recentResource, s.handleRecentCards)

	statsResource := mcp.NewResource("cards://stats",
		"Canvas Statistics",
		mcp.WithResourceDescription("Get statistics about the canvas"),
		mcp.WithMIMEType("application/json"),
	)
	s.mcpServer.AddResource(statsResource, s.handleStats)

	configResource := mcp.NewResource("cards://config",
		"Configuration",
		mcp.WithResourceDescription("Get current corkboard configuration"),
		mcp.WithMIMEType("application/json"),
	)
	s.mcpServer.AddResource(configResource, s.handleConfig)
}

func (s *CardServer) registerPrompts() {
	searchPrompt := mcp.NewPrompt("search_cards",
		mcp.WithPromptDescription("Search the canvas with a boolean query"),
		mcp.WithArgument("query",
			mcp.ArgumentDescription("Boolean search query string"),
		),
	)
	s.mcpServer.AddPrompt(searchPrompt, s.handleSearchPrompt)
}

// Tool handlers

func (s *CardServer) handleAddCard(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("MCP tool call: add_card")

	text, err := request.RequireString("text")
	if err != nil {
		return nil, fmt.Errorf("missing required parameter 'text': %w", err)
	}

	backText := request.GetString("back_text", "")
	tags := parseTags(request.GetString("tags", ""))
	x := request.GetFloat("x", 0)
	y := request.GetFloat("y", 0)
	color := request.GetString("color", "")
	if color == "" {
		color = s.cfg.DefaultCardColor
	}

	card, err := s.repo.Create(text, backText, tags, x, y, color)
	if err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	result := fmt.Sprintf("Card created successfully with ID: %d\nText: %s\nPosition: (%g, %g)",
		card.ID, truncateString(card.Text, 100), card.X, card.Y)
	if len(card.Tags) > 0 {
		result += fmt.Sprintf("\nTags: %s", strings.Join(card.Tags, ", "))
	}
	return mcp.NewToolResultText(result), nil
}

func (s *CardServer) handleSearchCards(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("MCP tool call: search_cards")

	queryStr, err := request.RequireString("query")
	if err != nil {
		return nil, fmt.Errorf("missing required parameter 'query': %w", err)
	}

	res, cards, err := s.engine.MatchingCards(queryStr)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	if res.Cleared {
		return mcp.NewToolResultText("Empty query: search filter cleared. All cards are visible."), nil
	}

	var result string
	if len(cards) == 0 {
		result = "No cards found matching your query."
	} else {
		result = fmt.Sprintf("Found %d cards:\n\n", len(cards))
		for i, card := range cards {
			tagsInfo := ""
			if len(card.Tags) > 0 {
				tagsInfo = fmt.Sprintf(" [Tags: %s]", strings.Join(card.Tags, ", "))
			}
			result += fmt.Sprintf("%d. [ID: %d] %s%s\n   Position: (%g, %g)\n\n",
				i+1, card.ID, truncateString(card.Text, 100), tagsInfo, card.X, card.Y)
		}
	}

	return mcp.NewToolResultText(result), nil
}

func (s *CardServer) handleGetCard(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("MCP tool call: get_card")

	id, err := request.RequireInt("id")
	if err != nil {
		return nil, fmt.Errorf("missing required parameter 'id': %w", err)
	}

	card, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	result := fmt.Sprintf("Card ID: %d\nPosition: (%g, %g)\nColor: %s", card.ID, card.X, card.Y, card.Color)
	if len(card.Tags) > 0 {
		result += fmt.Sprintf("\nTags: %s", strings.Join(card.Tags, ", "))
	}
	result += fmt.Sprintf("\nCreated: %s\nUpdated: %s\n\nText:\n%s",
		card.CreatedAt.Format("2006-01-02 15:04:05"),
		card.UpdatedAt.Format("2006-01-02 15:04:05"),
		card.Text)
	if card.BackText != "" {
		result += fmt.Sprintf("\n\nBack:\n%s", card.BackText)
	}

	return mcp.NewToolResultText(result), nil
}

func (s *CardServer) handleListCards(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("MCP tool call: list_cards")

	limit := request.GetInt("limit", 50)
	offset := request.GetInt("offset", 0)

	cards, err := s.repo.List(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	var result string
	if len(cards) == 0 {
		result = "No cards found."
	} else {
		result = fmt.Sprintf("Listing %d cards (offset: %d):\n\n", len(cards), offset)
		for i, card := range cards {
			tagsInfo := ""
			if len(card.Tags) > 0 {
				tagsInfo = fmt.Sprintf(" [Tags: %s]", strings.Join(card.Tags, ", "))
			}
			result += fmt.Sprintf("%d. [ID: %d]%s (Created: %s)\n   %s\n\n",
				i+1+offset, card.ID, tagsInfo,
				card.CreatedAt.Format("2006-01-02"),
				truncateString(card.Text, 80))
		}
	}

	return mcp.NewToolResultText(result), nil
}

func (s *CardServer) handleUpdateCard(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("MCP tool call: update_card")

	id, err := request.RequireInt("id")
	if err != nil {
		return nil, fmt.Errorf("missing required parameter 'id': %w", err)
	}

	card, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	if text := request.GetString("text", ""); text != "" {
		card.Text = text
	}
	if backText := request.GetString("back_text", ""); backText != "" {
		card.BackText = backText
	}
	if color := request.GetString("color", ""); color != "" {
		card.Color = color
	}

	if tagsStr := request.GetString("tags", ""); tagsStr != "" {
		card.Tags = parseTags(tagsStr)
	}

	if err := s.repo.Update(card); err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	return mcp.NewToolResultText(fmt.Sprintf("Card %d updated successfully.\nText: %s",
		card.ID, truncateString(card.Text, 100))), nil
}

func (s *CardServer) handleMoveCard(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("MCP tool call: move_card")

	id, err := request.RequireInt("id")
	if err != nil {
		return nil, fmt.Errorf("missing required parameter 'id': %w", err)
	}

	x, err := request.RequireFloat("x")
	if err != nil {
		return nil, fmt.Errorf("missing required parameter 'x': %w", err)
	}

	y, err := request.RequireFloat("y")
	if err != nil {
		return nil, fmt.Errorf("missing required parameter 'y': %w", err)
	}

	if err := s.repo.Move(id, x, y); err != nil {
		return nil, fmt.Errorf("failed to move card: %w", err)
	}

	return mcp.NewToolResultText(fmt.Sprintf("Card %d moved to (%g, %g)", id, x, y)), nil
}

func (s *CardServer) handleDeleteCard(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("MCP tool call: delete_card")

	id, err := request.RequireInt("id")
	if err != nil {
		return nil, fmt.Errorf("missing required parameter 'id': %w", err)
	}

	if err := s.repo.Delete(id); err != nil {
		return nil, fmt.Errorf("failed to delete card: %w", err)
	}

	return mcp.NewToolResultText(fmt.Sprintf("Successfully deleted card %d", id)), nil
}

func (s *CardServer) handleListTags(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("MCP tool call: list_tags")

	tags, err := s.repo.GetAllTags()
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}

	var result string
	if len(tags) == 0 {
		result = "No tags found."
	} else {
		names := make([]string, 0, len(tags))
		for name := range tags {
			names = append(names, name)
		}
		sort.Strings(names)

		result = fmt.Sprintf("Found %d tags:\n\n", len(names))
		for i, name := range names {
			result += fmt.Sprintf("%d. %s (%d cards)\n", i+1, name, tags[name])
		}
	}

	return mcp.NewToolResultText(result), nil
}

func (s *CardServer) handleUpdateCardTags(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("MCP tool call: update_card_tags")

	id, err := request.RequireInt("id")
	if err != nil {
		return nil, fmt.Errorf("missing required parameter 'id': %w", err)
	}

	tagsStr, err := request.RequireString("tags")
	if err != nil {
		return nil, fmt.Errorf("missing required parameter 'tags': %w", err)
	}

	if _, err := s.repo.GetByID(id); err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	tags := parseTags(tagsStr)
	if err := s.repo.UpdateTags(id, tags); err != nil {
		return nil, fmt.Errorf("failed to update tags: %w", err)
	}

	result := fmt.Sprintf("Successfully updated tags for card %d", id)
	if len(tags) > 0 {
		result += fmt.Sprintf("\nTags: %s", strings.Join(tags, ", "))
	} else {
		result += "\nRemoved all tags from card"
	}

	return mcp.NewToolResultText(result), nil
}

// Resource handlers

func (s *CardServer) handleRecentCards(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	logger.Debug("MCP resource read: cards://recent")

	cards, err := s.repo.List(10, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent cards: %w", err)
	}

	content := "Recent Cards:\n\n"
	for i, card := range cards {
		content += fmt.Sprintf("%d. [ID: %d] Created: %s\n   %s\n\n",
			i+1, card.ID,
			card.CreatedAt.Format("2006-01-02 15:04:05"),
			truncateString(card.Text, 150))
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			Text: content,
		},
	}, nil
}

func (s *CardServer) handleStats(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	logger.Debug("MCP resource read: cards://stats")

	cards, err := s.repo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get card count: %w", err)
	}

	tags, err := s.repo.GetAllTags()
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}

	content := fmt.Sprintf(`Canvas Statistics:
- Total Cards: %d
- Total Tags: %d
- Database Path: %s`,
		len(cards),
		len(tags),
		s.cfg.GetDatabasePath())

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			Text: content,
		},
	}, nil
}

func (s *CardServer) handleConfig(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	logger.Debug("MCP resource read: cards://config")

	content := fmt.Sprintf(`Corkboard Configuration:
- Debug Mode: %v
- Data Directory: %s
- Default Card Color: %s
- Grid Size: %d
- Snap To Grid: %v
- Card Size: %dx%d`,
		s.cfg.Debug,
		s.cfg.DataDirectory,
		s.cfg.DefaultCardColor,
		s.cfg.GridSize,
		s.cfg.SnapToGrid,
		constants.DefaultCardWidth,
		constants.DefaultCardHeight)

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			Text: content,
		},
	}, nil
}

// Prompt handlers

func (s *CardServer) handleSearchPrompt(_ context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	query := request.Params.Arguments["query"]

	prompt := fmt.Sprintf("Search the canvas for cards matching: %s\n\nThe query language supports AND/OR/NOT, quoted phrases, * wildcards, parentheses and NEAR/N proximity.", query)
	return &mcp.GetPromptResult{
		Description: "Search prompt for cards",
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(prompt),
			},
		},
	}, nil
}

func parseTags(tagsStr string) []string {
	if tagsStr == "" {
		return nil
	}

	var tags []string
	for _, tag := range strings.Split(tagsStr, ",") {
		cleanTag := strings.TrimSpace(tag)
		if cleanTag != "" {
			tags = append(tags, cleanTag)
		}
	}
	return tags
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
