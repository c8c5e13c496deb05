package issue

import "strings"

// messageTemplates maps every property change to its commit message. The
// table is the single place the message contract lives so it can be tested
// independently of the write path. Placeholders: {id} full id, {short}
// 8-character id, {value} the changed tag/milestone/due date.
//
// The subject lines keep the history greppable ("git log --grep '^gi('");
// the body repeats the change in the command syntax that caused it.
var messageTemplates = map[changeKind]string{
	changeNewDescription:  "gi: Add issue description\n\ngi new description {id}",
	changeEditDescription: "gi: Edit issue description\n\ngit edit description {id}",
	changeAddTag:          "gi({short}): Add tag {value}\n\ngi tag add {value}",
	changeRemoveTag:       "gi({short}): Remove tag {value}\n\ngi tag remove {value}",
	changeAddMilestone:    "gi({short}): Add milestone {value}\n\ngi milestone add {value}",
	changeRemoveMilestone: "gi({short}): Remove milestone {value}\n\ngi milestone remove {value}",
	changeAddDueDate:      "gi({short}): Add duedate {value}\n\ngi duedate add {value}",
	changeRemoveDueDate:   "gi({short}): Remove duedate {value}\n\ngi duedate remove {value}",
}

// markerMessage is committed empty to mark an issue's creation; the commit
// hash becomes the issue id.
const markerMessage = "gi: Add issue\n\ngi new mark"

func commitMessage(id ID, c propertyChange) string {
	msg := messageTemplates[c.kind]
	msg = strings.ReplaceAll(msg, "{id}", string(id))
	msg = strings.ReplaceAll(msg, "{short}", id.Short())
	return strings.ReplaceAll(msg, "{value}", c.value)
}
