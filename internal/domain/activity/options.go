package activity

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	CustomerID   *string
	VisitID      *string
	ActivityType *ActivityType
	Limit        int
	Offset       int
}
