package driver

import "strings"

func isValidDriverID(id int64) bool {
	return id > 0
}

func isValidVehicle(vehicleType, vehicleNumber string) bool {
	return strings.TrimSpace(vehicleType) != "" && strings.TrimSpace(vehicleNumber) != ""
}

func isValidRating(rating float64) bool {
	return rating >= 0 && rating <= 5
}
