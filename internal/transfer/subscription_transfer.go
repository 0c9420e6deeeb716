package transfer

import "time"

type SubscriptionEvent struct {
	ID        string `json:"id"`
	EventType string `json:"eventType"`
	CreatedAt int64  `json:"created_at"`
	Object    struct {
		ID       string `json:"id"`
		Object   string `json:"object"`
		Customer struct {
			ID        string    `json:"id"`
			Object    string    `json:"object"`
			Email     string    `json:"email"`
			Name      string    `json:"name"`
			Country   string    `json:"country"`
			CreatedAt time.Time `json:"created_at"`
			UpdatedAt time.Time `json:"updated_at"`
			Mode      string    `json:"mode"`
		} `json:"customer"`
		Status                 string    `json:"status"`
		LastTransactionID      string    `json:"last_transaction_id"`
		LastTransactionDate    time.Time `json:"last_transaction_date"`
		NextTransactionDate    time.Time `json:"next_transaction_date"`
		CurrentPeriodStartDate time.Time `json:"current_period_start_date"`
		CurrentPeriodEndDate   time.Time `json:"current_period_end_date"`
		CreatedAt              time.Time `json:"created_at"`
		UpdatedAt              time.Time `json:"updated_at"`
		Mode                   string    `json:"mode"`
	} `json:"object"`
}
