package enum

import "encoding/json"

// FormState represents the lifecycle state of a purchase-order form session
type FormState int

const (
	FormStateEditing    FormState = 0
	FormStateValidating FormState = 1
	FormStateSubmitting FormState = 2
)

func (s FormState) String() string {
	return [...]string{"editing", "validating", "submitting"}[s]
}

func (s FormState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *FormState) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = FormState(i)
		return nil
	}
	switch str {
	case "editing":
		*s = FormStateEditing
	case "validating":
		*s = FormStateValidating
	case "submitting":
		*s = FormStateSubmitting
	}
	return nil
}
