package domain

import "time"

// DateLayout é o formato de data usado como chave dos relatórios e das recomendações
const DateLayout = "2006-01-02"

// NormalizeDate descarta o horário e o fuso, mantendo apenas o dia de calendário em UTC
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, err
	}

	return NormalizeDate(date), nil
}

