package motion

import "github.com/ganot/committee/internal/domain/catalog"

// Order is the result of comparing two motion types.
type Order int

const (
	Lower  Order = -1
	Equal  Order = 0
	Higher Order = 1
)

func (o Order) String() string {
	switch o {
	case Lower:
		return "lower"
	case Higher:
		return "higher"
	}
	return "equal"
}

var classRank = map[catalog.Class]int{
	catalog.ClassMain:       1,
	catalog.ClassSubsidiary: 2,
	catalog.ClassPrivileged: 3,
	catalog.ClassIncidental: 4,
}

// Compare orders a against b. Within a class a lower precedence number ranks
// higher; across classes incidental > privileged > subsidiary > main.
func Compare(a, b catalog.MotionType) Order {
	if a.Class == b.Class {
		return sign(b.Precedence - a.Precedence)
	}
	return sign(classRank[a.Class] - classRank[b.Class])
}

// Admissible reports whether candidate may be made while floor is pending.
// An amendment may also displace a motion of equal rank.
func Admissible(candidate, floor catalog.MotionType) bool {
	order := Compare(candidate, floor)
	if candidate.IsAmendment() {
		return order != Lower
	}
	return order == Higher
}

func sign(n int) Order {
	switch {
	case n < 0:
		return Lower
	case n > 0:
		return Higher
	}
	return Equal
}
