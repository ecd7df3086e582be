package ai

import (
	"github.com/shenikar/family_crisis_hub/internal/models"
	"google.golang.org/genai"
)

func str(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: desc}
}

func strList(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}, Description: desc}
}

func object(props map[string]*genai.Schema, required ...string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: required}
}

func list(items *genai.Schema, desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: items, Description: desc}
}

func routeInfoSchema() *genai.Schema {
	return object(map[string]*genai.Schema{
		"duration":      str("Estimated travel time, e.g., '25 min drive'."),
		"distance":      str("Estimated travel distance, e.g., '4.5 mi'."),
		"traffic_level": str("Qualitative traffic assessment, e.g., 'Heavy', 'Severe', 'Light'."),
		"hazards":       strList("List of specific hazards on the route, e.g., 'Bridge closure', 'Road flooding'."),
		"viable":        {Type: genai.TypeBoolean, Description: "Whether the route is considered safe and possible to travel."},
	}, "duration", "distance", "traffic_level", "hazards", "viable")
}

func meetupPointSchema() *genai.Schema {
	route := object(map[string]*genai.Schema{
		"memberName": {Type: genai.TypeString},
		"route":      routeInfoSchema(),
	}, "memberName", "route")

	return object(map[string]*genai.Schema{
		"rank":    {Type: genai.TypeNumber, Description: "The priority rank of the meetup point, with 1 being the highest."},
		"name":    str("A descriptive name for the meetup point, e.g., 'City Library Park'."),
		"address": str("The full street address of the meetup point."),
		"reason":  str("A brief justification for why this point was chosen, considering safety and accessibility."),
		"routes":  list(route, "Route analysis for each family member to this meetup point."),
		"coordinates": object(map[string]*genai.Schema{
			"lat": {Type: genai.TypeNumber},
			"lng": {Type: genai.TypeNumber},
		}, "lat", "lng"),
	}, "rank", "name", "address", "reason", "routes", "coordinates")
}

// PlanSchema - схема ответа пяти агентов
func PlanSchema() *genai.Schema {
	triage := object(map[string]*genai.Schema{
		"priority_list": list(object(map[string]*genai.Schema{
			"name":   {Type: genai.TypeString},
			"reason": str("Explanation for their priority (e.g., 'Last status was HELP', 'Located near crisis epicenter')."),
		}, "name", "reason"), "A ranked list of family members who need the most immediate attention or confirmation of safety."),
		"assessment": str("A brief, overall summary of the family's situation based on member statuses."),
	}, "priority_list", "assessment")

	logistics := object(map[string]*genai.Schema{
		"meetup_points":          list(meetupPointSchema(), "A ranked list of safe, viable meetup points."),
		"movement_plan":          str("High-level instructions on when and how to move. Should advise staying put if no viable routes exist."),
		"supply_recommendations": strList("A list of essential supplies to gather based on the crisis type."),
	}, "meetup_points", "movement_plan", "supply_recommendations")

	medical := object(map[string]*genai.Schema{
		"member_assessments": list(object(map[string]*genai.Schema{
			"name":         {Type: genai.TypeString},
			"needs":        str("Inferred medical needs based on status (e.g., 'Potential injury, monitor symptoms')."),
			"instructions": str("Simple, actionable first-aid or monitoring advice."),
		}, "name", "needs", "instructions"), ""),
		"overall_recommendation": str("A summary of the family's medical situation and general advice."),
	}, "member_assessments", "overall_recommendation")

	forecast := object(map[string]*genai.Schema{
		"timeline": list(object(map[string]*genai.Schema{
			"time":       str("A relative time, e.g., 'Next 30 Mins', '1-2 Hours'."),
			"prediction": str("A prediction of what might happen (e.g., 'Aftershocks possible', 'Heavy rain expected')."),
		}, "time", "prediction"), "A projected timeline of events for the next few hours."),
		"secondary_hazards": strList("A list of potential secondary hazards to be aware of (e.g., 'Gas leaks', 'Flooding')."),
	}, "timeline", "secondary_hazards")

	synthesis := object(map[string]*genai.Schema{
		"urgency_level": {
			Type:        genai.TypeString,
			Description: "An overall urgency level.",
			Enum:        []string{"IMMEDIATE", "URGENT", "MODERATE", "LOW"},
		},
		"priority_actions":    strList("The top 3-5 most critical actions the family should take immediately."),
		"reassurance_message": str("A calm, reassuring message to build confidence and reduce panic."),
	}, "urgency_level", "priority_actions", "reassurance_message")

	return object(map[string]*genai.Schema{
		"triage_analysis":     triage,
		"logistics_plan":      logistics,
		"medical_assessment":  medical,
		"prediction_forecast": forecast,
		"synthesized_plan":    synthesis,
	}, "triage_analysis", "logistics_plan", "medical_assessment", "prediction_forecast", "synthesized_plan")
}

// CheckinSchema - схема разбора SMS; UNKNOWN в перечисление не входит
func CheckinSchema() *genai.Schema {
	return object(map[string]*genai.Schema{
		"status": {
			Type:        genai.TypeString,
			Description: "The inferred status of the person.",
			Enum:        []string{string(models.StatusSafe), string(models.StatusHelp), string(models.StatusInjured)},
		},
		"summary": str("A concise summary of the person's situation based on their message."),
	}, "status", "summary")
}

func RouteSchema() *genai.Schema {
	return routeInfoSchema()
}
