package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
)

// Printer formata a saída do terminal
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

func NewPrinter(out, errOut io.Writer, useColors bool) *Printer {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		useColors = false
	}

	return &Printer{out: out, err: errOut, useColors: useColors}
}

func (p *Printer) Success(format string, args ...any) {
	if p.useColors {
		color.New(color.FgGreen).Fprintf(p.out, "✓ "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.out, "[OK] "+format+"\n", args...)
}

func (p *Printer) Error(format string, args ...any) {
	if p.useColors {
		color.New(color.FgRed).Fprintf(p.err, "✗ "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.err, "[ERRO] "+format+"\n", args...)
}

func (p *Printer) Info(format string, args ...any) {
	if p.useColors {
		color.New(color.FgCyan).Fprintf(p.out, format+"\n", args...)
		return
	}
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Header(title string) {
	if p.useColors {
		color.New(color.FgWhite, color.Bold).Fprintf(p.out, "\n%s\n", title)
		return
	}
	fmt.Fprintf(p.out, "\n%s\n%s\n", title, strings.Repeat("-", len([]rune(title))))
}

// State colore o estado final da execução
func (p *Printer) State(state domain.RunState) string {
	if !p.useColors {
		return string(state)
	}

	if state == domain.RunStateSucceeded {
		return color.GreenString(string(state))
	}
	return color.RedString(string(state))
}

func (p *Printer) table(headers []string, rows [][]string) error {
	table := tablewriter.NewTable(p.out,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)

	table.Header(headers)
	if err := table.Bulk(rows); err != nil {
		return err
	}

	return table.Render()
}

// RunResult imprime o registro final de uma execução
func (p *Printer) RunResult(result *domain.RunResult) error {
	p.Header("Execução " + result.Day)

	rows := [][]string{
		{"run_id", result.RunID},
		{"estado", p.State(result.State)},
		{"forçada", strconv.FormatBool(result.Force)},
		{"tentativas", strconv.Itoa(result.Attempts)},
		{"tentativas de geração", strconv.Itoa(result.GenerationAttempts)},
		{"duração", result.Duration().Round(time.Millisecond).String()},
	}
	if result.ReportStatus != "" {
		rows = append(rows, []string{"relatório", string(result.ReportStatus)})
	}
	if result.FailureKind != domain.FailureKindNone {
		rows = append(rows,
			[]string{"falha", string(result.FailureKind)},
			[]string{"estágio", string(result.FailedStage)},
			[]string{"erro", result.Error},
		)
	}

	if err := p.table([]string{"CAMPO", "VALOR"}, rows); err != nil {
		return err
	}

	if len(result.Sources) > 0 {
		p.Header("Fontes")

		sourceRows := make([][]string, 0, len(result.Sources))
		for _, source := range result.Sources {
			sourceRows = append(sourceRows, []string{
				string(source.Source),
				strconv.FormatBool(source.Present),
				strconv.Itoa(source.Attempts),
				string(source.FailureKind),
			})
		}

		if err := p.table([]string{"FONTE", "PRESENTE", "TENTATIVAS", "FALHA"}, sourceRows); err != nil {
			return err
		}
	}

	if result.Recommendations != nil {
		return p.Recommendations(result.Recommendations)
	}

	return nil
}

// Recommendations imprime o conjunto de recomendações de um dia
func (p *Printer) Recommendations(set *domain.RecommendationSet) error {
	p.Header(fmt.Sprintf("Recomendações %s (%s)", domain.FormatDate(set.Date), set.SourceReportStatus))

	if len(set.Recommendations) == 0 {
		p.Info("Nenhuma recomendação gerada")
		return nil
	}

	rows := make([][]string, 0, len(set.Recommendations))
	for _, recommendation := range set.Recommendations {
		rows = append(rows, []string{
			recommendation.ID,
			string(recommendation.Category),
			strconv.FormatFloat(recommendation.Confidence, 'f', 2, 64),
			recommendation.Text,
		})
	}

	return p.table([]string{"ID", "CATEGORIA", "CONFIANÇA", "TEXTO"}, rows)
}
