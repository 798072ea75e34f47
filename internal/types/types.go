package types

import "time"

// Delivery represents a delivery record shown on the deliveries page
type Delivery struct {
	ID           int        `json:"id"`
	TrackingCode string     `json:"tracking_code"`
	Customer     string     `json:"customer"`
	Address      string     `json:"address"`
	Status       string     `json:"status"`
	Driver       string     `json:"driver"`
	ScheduledAt  *time.Time `json:"scheduled_at,omitempty"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`
	CODAmount    float64    `json:"cod_amount"`
}

// FuelLog represents a vehicle refuelling entry shown on the fuel logs page
type FuelLog struct {
	ID       int       `json:"id"`
	Vehicle  string    `json:"vehicle"`
	Driver   string    `json:"driver"`
	Liters   float64   `json:"liters"`
	Cost     float64   `json:"cost"`
	FilledAt time.Time `json:"filled_at"`
}

// Customer represents a customer record shown on the customers page
type Customer struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	TotalOrders int    `json:"total_orders"`
}

// ReportSummary is the aggregate returned by the reports endpoint
type ReportSummary struct {
	Total        int     `json:"total"`
	Delivered    int     `json:"delivered"`
	Pending      int     `json:"pending"`
	Failed       int     `json:"failed"`
	CODCollected float64 `json:"cod_collected"`
}
