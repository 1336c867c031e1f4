package domain

import "fmt"

// ComparisonOperator закрытый набор операторов сравнения для правил эскалации
type ComparisonOperator string

const (
	OpLess           ComparisonOperator = "<"
	OpLessOrEqual    ComparisonOperator = "<="
	OpGreater        ComparisonOperator = ">"
	OpGreaterOrEqual ComparisonOperator = ">="
	OpEqual          ComparisonOperator = "=="
	OpNotEqual       ComparisonOperator = "!="
)

// IsValid returns true if the operator is one of the supported operators
func (op ComparisonOperator) IsValid() bool {
	switch op {
	case OpLess, OpLessOrEqual, OpGreater, OpGreaterOrEqual, OpEqual, OpNotEqual:
		return true
	}
	return false
}

// Compare применяет оператор к паре чисел
func (op ComparisonOperator) Compare(left, right int) (bool, error) {
	switch op {
	case OpLess:
		return left < right, nil
	case OpLessOrEqual:
		return left <= right, nil
	case OpGreater:
		return left > right, nil
	case OpGreaterOrEqual:
		return left >= right, nil
	case OpEqual:
		return left == right, nil
	case OpNotEqual:
		return left != right, nil
	}
	return false, fmt.Errorf("%w: unknown comparison operator %q", ErrInvalidInput, string(op))
}

// EscalationRule правило рекомендации эскалации
// Левая часть всегда одна: число отмен работника за окно escalation.window_days
type EscalationRule struct {
	Operator  ComparisonOperator
	Threshold int
	Enabled   bool
}

// Matches returns true if the rule is enabled and the cancellation count satisfies it
func (r EscalationRule) Matches(cancellationCount int) bool {
	if !r.Enabled {
		return false
	}
	ok, err := r.Operator.Compare(cancellationCount, r.Threshold)
	return err == nil && ok
}

// AnyRuleMatches returns true if at least one enabled rule matches
func AnyRuleMatches(rules []EscalationRule, cancellationCount int) bool {
	for _, rule := range rules {
		if rule.Matches(cancellationCount) {
			return true
		}
	}
	return false
}
