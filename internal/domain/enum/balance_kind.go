package enum

import "encoding/json"

// BalanceKind tags the balance figure of an order: money still owed to the
// supplier, or money paid beyond the order total.
type BalanceKind string

const (
	BalanceKindDue    BalanceKind = "balance_due"
	BalanceKindExcess BalanceKind = "excess"
)

func (k BalanceKind) String() string {
	return string(k)
}

func (k BalanceKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(k))
}

func (k *BalanceKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*k = BalanceKind(str)
	return nil
}
