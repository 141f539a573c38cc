package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/yukikurage/collab-projects-api/internal/constants"
)

type AIService struct {
	client *openai.Client
}

// ProjectDraft is a project outline proposed by the model. SkillIDs is
// filled afterwards from the catalog.
type ProjectDraft struct {
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	Objective           string   `json:"objective"`
	TargetCollaborators uint     `json:"target_collaborators"`
	SuggestedSkills     []string `json:"suggested_skills"`
	SkillIDs            []uint64 `json:"-"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// NewAIServiceWithConfig builds the service from a full client configuration,
// e.g. to point it at a different base URL.
func NewAIServiceWithConfig(cfg openai.ClientConfig) *AIService {
	return &AIService{
		client: openai.NewClientWithConfig(cfg),
	}
}

// DraftProjectFromText turns a free-form idea into a structured project draft using OpenAI GPT
func (s *AIService) DraftProjectFromText(ctx context.Context, text string) (*ProjectDraft, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You help university students publish collaborative projects.
Turn the idea below into a project proposal.

Idea:
%s

Answer with a single JSON object of this shape:
{
  "title": "short project title (max 200 characters)",
  "description": "what the project is about",
  "objective": "what the team wants to achieve",
  "target_collaborators": 3,
  "suggested_skills": ["skill name", "..."]
}

Rules:
- suggest at most %d skills, using common short names (e.g. "Python", "UX Design")
- target_collaborators is how many people should join besides the author
- return only JSON, no explanations`, text, constants.MaxAISuggestedSkills)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)

	var draft ProjectDraft
	if err := json.Unmarshal([]byte(content), &draft); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	if len(draft.SuggestedSkills) > constants.MaxAISuggestedSkills {
		draft.SuggestedSkills = draft.SuggestedSkills[:constants.MaxAISuggestedSkills]
	}

	return &draft, nil
}
