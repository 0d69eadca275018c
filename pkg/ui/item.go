package ui

import (
	"fmt"

	"github.com/fieldboard/fieldboard/pkg/model"
)

// IssueItem wraps model.Issue to implement list.Item
type IssueItem struct {
	Issue model.Issue
}

func (i IssueItem) Title() string {
	return i.Issue.DisplayLabel()
}

func (i IssueItem) Description() string {
	return fmt.Sprintf("%s %s • %s", i.Issue.ID, i.Issue.Status.Normalize(), i.Issue.DisplaySeverity())
}

func (i IssueItem) FilterValue() string {
	return i.Issue.DisplayLabel() + " " + i.Issue.ID + " " + string(i.Issue.Status) + " " + i.Issue.Severity
}
