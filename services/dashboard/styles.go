package dashboard

const defaultBadgeClass = "bg-gray-100 text-gray-800"

// StatusClass maps a queue status to its badge classes.
// Unknown statuses get the waiting treatment.
func StatusClass(status QueueStatus) string {
	switch status {
	case StatusTriage:
		return "bg-purple-200 text-black"
	case StatusInService:
		return "bg-purple-300 text-black"
	default:
		return "bg-purple-100 text-black"
	}
}

// PriorityClass maps a priority to its badge classes
func PriorityClass(priority Priority) string {
	switch priority {
	case PriorityUrgent:
		return "bg-red-100 text-red-800"
	case PriorityHigh:
		return "bg-orange-100 text-orange-800"
	case PriorityNormal:
		return "bg-blue-100 text-blue-800"
	case PriorityLow:
		return defaultBadgeClass
	default:
		return defaultBadgeClass
	}
}
