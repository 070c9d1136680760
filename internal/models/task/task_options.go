package task

import "time"

type PatchOption func(*Patch)

func WithTitle(title string) PatchOption {
	return func(p *Patch) {
		p.Title = &title
	}
}

func WithDescription(description string) PatchOption {
	return func(p *Patch) {
		p.Description = &description
	}
}

func WithPriority(priority Priority) PatchOption {
	if priority == "" {
		return nil
	}
	return func(p *Patch) {
		p.Priority = &priority
	}
}

func WithStatus(status Status) PatchOption {
	if status == "" {
		return nil
	}
	return func(p *Patch) {
		p.Status = &status
	}
}

func WithDueDate(dueDate time.Time) PatchOption {
	if dueDate.IsZero() {
		return nil
	}
	return func(p *Patch) {
		p.DueDate = &dueDate
	}
}

// NewPatch assembles a partial update from the given options; nil options are
// skipped so callers can pass conditional setters straight through.
func NewPatch(options ...PatchOption) Patch {
	var p Patch
	for _, opt := range options {
		if opt != nil {
			opt(&p)
		}
	}
	return p
}
