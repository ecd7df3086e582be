package ai

import (
	"encoding/json"
	"fmt"

	"github.com/shenikar/family_crisis_hub/internal/models"
)

const planPromptTemplate = `
You are a multi-agent AI crisis management system for a family. Your goal is to provide a clear, actionable, and reassuring plan.
Analyze the provided family and crisis data to generate a comprehensive response.

**AGENT ROLES:**
1.  **Triage Agent:** Prioritize family members based on their status, location relative to hazards, and last message.
2.  **Logistics Agent:** Determine safe meetup locations, analyze routes for each member, and recommend supplies. Routes must be analyzed individually considering the member's start location. A viable route is one that is likely clear of immediate, known crisis-related blockages.
3.  **Medical Agent:** Assess potential medical needs based on reported statuses like 'INJURED' and provide simple, clear instructions.
4.  **Prediction Agent:** Forecast the crisis's evolution over the next few hours, including potential secondary hazards.
5.  **Synthesis Agent:** Combine the outputs of all agents into a single, cohesive plan with clear, prioritized actions and a reassuring message.

**INPUT DATA:**
- **Current User Location (for context):** %s
- **Family Circle Information:** %s
- **Live Crisis Events:** %s

**INSTRUCTIONS:**
- Base your entire analysis on the provided data.
- Be realistic. If a route passes through a crisis epicenter, it is likely not viable. Mention specific hazards.
- Meetup points should be logical public places (parks, libraries, etc.) that are away from the immediate crisis zones. Propose 2-3 ranked options.
- The final output MUST be a single JSON object that strictly adheres to the provided schema. Do not include any explanatory text, markdown formatting, or any content outside the JSON structure.
`

const checkinPromptTemplate = `
You are an SMS parsing service for an emergency response app. Your job is to analyze an incoming SMS message and determine the person's status and a summary of their situation.

**Instructions:**
1. Read the message carefully to understand the sender's condition.
2. Determine the status. It MUST be one of the following exact values: 'SAFE', 'HELP', or 'INJURED'.
    - 'SAFE': The person is okay, not in immediate danger.
    - 'HELP': The person needs assistance but is not explicitly stating an injury (e.g., stuck, needs rescue).
    - 'INJURED': The person explicitly mentions being hurt, wounded, or having a medical emergency.
3. Create a brief, one-sentence summary of their message.

**SMS Message to Analyze:**
%q

The output MUST be a single JSON object that strictly adheres to the provided schema. Do not include any explanatory text, markdown formatting, or any content outside the JSON structure.
`

const routePromptTemplate = `
Act as a crisis route intelligence analyst.
Your task is to analyze the viability of a travel route for a specific person during an active crisis.

**Crisis Context:**
%s

**Route Details:**
- Person: %s
- Start Location: %s
- Destination: %s

Based on the crisis events (e.g., earthquake location, severity), infer potential road closures, traffic congestion, and specific hazards. Provide a realistic assessment of the route's viability.

The output MUST be a single JSON object that strictly adheres to the schema provided. Do not include any explanatory text or markdown formatting.
`

func toJSON(v any, indent bool) (string, error) {
	var (
		b   []byte
		err error
	)
	if indent {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func buildPlanPrompt(circle models.Circle, events []models.CrisisEvent, loc models.Coordinates) (string, error) {
	if events == nil {
		events = []models.CrisisEvent{}
	}
	locJSON, err := toJSON(loc, false)
	if err != nil {
		return "", fmt.Errorf("encoding location: %w", err)
	}
	circleJSON, err := toJSON(circle, true)
	if err != nil {
		return "", fmt.Errorf("encoding circle: %w", err)
	}
	eventsJSON, err := toJSON(events, true)
	if err != nil {
		return "", fmt.Errorf("encoding crisis events: %w", err)
	}
	return fmt.Sprintf(planPromptTemplate, locJSON, circleJSON, eventsJSON), nil
}

func buildCheckinPrompt(message string) string {
	return fmt.Sprintf(checkinPromptTemplate, message)
}

func buildRoutePrompt(memberName string, from, to models.Coordinates, events []models.CrisisEvent) (string, error) {
	if events == nil {
		events = []models.CrisisEvent{}
	}
	eventsJSON, err := toJSON(events, true)
	if err != nil {
		return "", fmt.Errorf("encoding crisis events: %w", err)
	}
	fromJSON, err := toJSON(from, false)
	if err != nil {
		return "", fmt.Errorf("encoding start location: %w", err)
	}
	toJSONStr, err := toJSON(to, false)
	if err != nil {
		return "", fmt.Errorf("encoding destination: %w", err)
	}
	return fmt.Sprintf(routePromptTemplate, eventsJSON, memberName, fromJSON, toJSONStr), nil
}
