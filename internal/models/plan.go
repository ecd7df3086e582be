package models

// RouteInfo - маршрут участника до точки сбора
type RouteInfo struct {
	Duration     string   `json:"duration" validate:"required"`
	Distance     string   `json:"distance" validate:"required"`
	TrafficLevel string   `json:"traffic_level" validate:"required"`
	Hazards      []string `json:"hazards" validate:"required"`
	Viable       bool     `json:"viable"`
}

type MemberRoute struct {
	MemberName string    `json:"memberName" validate:"required"`
	Route      RouteInfo `json:"route"`
}

type MeetupPoint struct {
	Rank        int           `json:"rank" validate:"gte=1"`
	Name        string        `json:"name" validate:"required"`
	Address     string        `json:"address" validate:"required"`
	Reason      string        `json:"reason" validate:"required"`
	Routes      []MemberRoute `json:"routes" validate:"required,dive"`
	Coordinates Coordinates   `json:"coordinates"`
}

type PriorityEntry struct {
	Name   string `json:"name" validate:"required"`
	Reason string `json:"reason" validate:"required"`
}

type TriageAnalysis struct {
	PriorityList []PriorityEntry `json:"priority_list" validate:"required,dive"`
	Assessment   string          `json:"assessment" validate:"required"`
}

type LogisticsPlan struct {
	MeetupPoints          []MeetupPoint `json:"meetup_points" validate:"required,dive"`
	MovementPlan          string        `json:"movement_plan" validate:"required"`
	SupplyRecommendations []string      `json:"supply_recommendations" validate:"required"`
}

type MemberAssessment struct {
	Name         string `json:"name" validate:"required"`
	Needs        string `json:"needs" validate:"required"`
	Instructions string `json:"instructions" validate:"required"`
}

type MedicalAssessment struct {
	MemberAssessments     []MemberAssessment `json:"member_assessments" validate:"required,dive"`
	OverallRecommendation string             `json:"overall_recommendation" validate:"required"`
}

type TimelineEntry struct {
	Time       string `json:"time" validate:"required"`
	Prediction string `json:"prediction" validate:"required"`
}

type PredictionForecast struct {
	Timeline         []TimelineEntry `json:"timeline" validate:"required,dive"`
	SecondaryHazards []string        `json:"secondary_hazards" validate:"required"`
}

type SynthesizedPlan struct {
	UrgencyLevel       string   `json:"urgency_level" validate:"required,oneof=IMMEDIATE URGENT MODERATE LOW"`
	PriorityActions    []string `json:"priority_actions" validate:"required"`
	ReassuranceMessage string   `json:"reassurance_message" validate:"required"`
}

// MultiAgentPlan - проверенный результат одной генерации плана.
// Заменяется целиком, частично не обновляется.
type MultiAgentPlan struct {
	TriageAnalysis     *TriageAnalysis     `json:"triage_analysis" validate:"required"`
	LogisticsPlan      *LogisticsPlan      `json:"logistics_plan" validate:"required"`
	MedicalAssessment  *MedicalAssessment  `json:"medical_assessment" validate:"required"`
	PredictionForecast *PredictionForecast `json:"prediction_forecast" validate:"required"`
	SynthesizedPlan    *SynthesizedPlan    `json:"synthesized_plan" validate:"required"`
}
