package utils

import "time"

// DaysAgo retorna o início do dia de referência menos a quantidade de dias no fuso informado
func DaysAgo(reference time.Time, days int, location *time.Location) time.Time {
	local := reference.In(location)
	y, m, d := local.AddDate(0, 0, -days).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
