package models

type Goal struct {
	Description string  `json:"description" example:"Emergency fund"`
	Amount      float64 `json:"amount" example:"1000"`
	Progress    float64 `json:"progress" example:"250"`
}

// GoalRequest is the body of a goal create. Unlike GoalPatch every key is
// required.
type GoalRequest struct {
	Description *string  `json:"description" binding:"required" example:"Emergency fund"`
	Amount      *float64 `json:"amount" binding:"required" example:"1000"`
	Progress    *float64 `json:"progress" binding:"required" example:"250"`
}

func (r GoalRequest) Goal() Goal {
	return Goal{Description: *r.Description, Amount: *r.Amount, Progress: *r.Progress}
}

type GoalInDB struct {
	ID int64 `json:"id" example:"1"`
	Goal
}

// GoalPatch is the body of a partial goal update. Progress is a pointer so
// that an explicit 0 can be told apart from an omitted field.
type GoalPatch struct {
	Description string   `json:"description" example:"Emergency fund"`
	Amount      float64  `json:"amount" example:"1500"`
	Progress    *float64 `json:"progress" example:"300"`
}

// Merge applies p on top of g.
//
// Quirk kept for client compatibility: an empty description or a zero
// amount is treated as "not provided" and the stored value is kept, while
// progress overwrites whenever it is present, including 0.
func (g GoalInDB) Merge(p GoalPatch) GoalInDB {
	merged := g
	if p.Description != "" {
		merged.Description = p.Description
	}
	if p.Amount != 0 {
		merged.Amount = p.Amount
	}
	if p.Progress != nil {
		merged.Progress = *p.Progress
	}
	return merged
}
