package models

type JobType string
type JobStatus string
type LocationType string
type ExperienceLevel string
type AnalyticsEventType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"

	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
	JobStatusDraft  JobStatus = "draft"

	LocationTypeOnsite LocationType = "onsite"
	LocationTypeRemote LocationType = "remote"
	LocationTypeHybrid LocationType = "hybrid"

	ExperienceEntry  ExperienceLevel = "entry"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
	ExperienceLead   ExperienceLevel = "lead"

	AnalyticsView  AnalyticsEventType = "view"
	AnalyticsClick AnalyticsEventType = "click"
	AnalyticsApply AnalyticsEventType = "apply"
	AnalyticsShare AnalyticsEventType = "share"
)

// Default role names created by the seed.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship:
		return true
	}
	return false
}

func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusActive, JobStatusClosed, JobStatusDraft:
		return true
	}
	return false
}

func (l LocationType) Valid() bool {
	switch l {
	case LocationTypeOnsite, LocationTypeRemote, LocationTypeHybrid:
		return true
	}
	return false
}

func (e ExperienceLevel) Valid() bool {
	switch e {
	case ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceLead:
		return true
	}
	return false
}

func (a AnalyticsEventType) Valid() bool {
	switch a {
	case AnalyticsView, AnalyticsClick, AnalyticsApply, AnalyticsShare:
		return true
	}
	return false
}
