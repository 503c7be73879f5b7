package kafka

type RewardEvent struct {
	VendorID      string   `json:"vendor_id"`
	ManagerID     string   `json:"manager_id,omitempty"`
	CampaignID    string   `json:"campaign_id"`
	TierNumber    int      `json:"tier_number"`
	VendorAmount  string   `json:"vendor_amount"`
	ManagerAmount string   `json:"manager_amount,omitempty"`
	EventNames    []string `json:"event_names,omitempty"`
}

type PayoutEvent struct {
	BatchNumber string `json:"batch_number"`
	Action      string `json:"action"` // generated, processed, cancelled
	Reports     int    `json:"reports"`
	TotalValue  string `json:"total_value"`
	AdminID     string `json:"admin_id"`
}
