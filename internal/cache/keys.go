package cache

import (
	"fmt"
	"strings"
)

func SessionKey(userID uint) string {
	return fmt.Sprintf("session:user:%d", userID)
}

func DashboardKey(userID uint) string {
	return fmt.Sprintf("dashboard:user:%d", userID)
}

func InsightsKey(userID uint) string {
	return fmt.Sprintf("insights:user:%d", userID)
}

// PropertyKey namespaces a per-property result, e.g. property:7:maintenance.
func PropertyKey(propertyID uint, facet string) string {
	return fmt.Sprintf("property:%d:%s", propertyID, facet)
}

func GeocodeKey(address string) string {
	return "geocode:" + strings.ToLower(strings.Join(strings.Fields(address), " "))
}
