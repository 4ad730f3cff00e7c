package model

// ConnectionRecord is the immutable result of accepting a building into
// the connection plan. Rank is the 1-based acceptance order.
type ConnectionRecord struct {
	BuildingID         string  `json:"building_id"`
	BuildingType       string  `json:"building_type"`
	HouseCount         int     `json:"house_count"`
	InfrastructureID   string  `json:"infrastructure_id"`
	InfrastructureType string  `json:"infrastructure_type"`
	Cost               float64 `json:"cost"`
	Time               float64 `json:"time"`
	PriorityScore      float64 `json:"priority_score"`
	Efficiency         float64 `json:"efficiency"`
	Rank               int     `json:"rank"`
}

// Phase is a sequential construction bucket. Index 0 is reserved for
// critical facilities; 1..N are the weighted cost buckets.
type Phase struct {
	Index       int      `json:"phase"`
	Members     []string `json:"members"`
	TotalCost   float64  `json:"total_cost"`
	TotalHouses int      `json:"total_houses"`
}
