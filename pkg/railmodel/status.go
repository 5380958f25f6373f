package railmodel

type ServiceStatus string

const (
	ServiceStatusOnTime    ServiceStatus = "OnTime"
	ServiceStatusDelayed   ServiceStatus = "Delayed"
	ServiceStatusCancelled ServiceStatus = "Cancelled"
	ServiceStatusArrived   ServiceStatus = "Arrived"
	ServiceStatusDeparted  ServiceStatus = "Departed"
	ServiceStatusUnknown   ServiceStatus = "Unknown"
)
