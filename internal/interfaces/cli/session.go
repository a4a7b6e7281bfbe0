// Package cli es el driver de terminal del conteo: lee comandos línea a línea
// y llama a los mismos casos de uso que la API HTTP.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jhoicas/inventario-conteo/internal/application/counting"
	"github.com/jhoicas/inventario-conteo/internal/application/dto"
	"github.com/jhoicas/inventario-conteo/internal/domain"
)

const prompt = "> "

const help = `Comandos:
  buscar <código>                        mostra descrição e lotes do produto
  lancar <código> <lote|#n> <quantidade> soma a quantidade (#n = n-ésimo lote conhecido)
  desfazer                               corrige o último lançamento
  limpar                                 descarta todos os lançamentos
  listar                                 mostra os registros contados
  exportar <rodada> <tipo>               gera a planilha xlsx (ex.: exportar Primeira Insumo)
  relatorio <rodada> <tipo>              gera o relatório PDF
  ajuda                                  mostra esta ajuda
  sair                                   encerra a sessão`

// Session sesión de conteo de un operador en terminal.
type Session struct {
	uc       *counting.CountingUseCase
	operator string
	in       io.Reader
	out      io.Writer
	// AllowClear habilita "limpar" (solo supervisores).
	AllowClear bool
}

// NewSession construye la sesión sobre la entrada y salida indicadas.
func NewSession(uc *counting.CountingUseCase, operator string, in io.Reader, out io.Writer) *Session {
	return &Session{uc: uc, operator: operator, in: in, out: out, AllowClear: true}
}

// Run procesa comandos hasta "sair", fin de entrada o cancelación del contexto.
// La lectura corre en otra goroutine para que la cancelación no espere la próxima línea.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	fmt.Fprintln(s.out, `Contagem de inventário. Digite "ajuda" para ver os comandos.`)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.out, prompt)

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(s.out)
				select {
				case err := <-readErr:
					return err
				default:
					return ctx.Err()
				}
			}
			line = l
		}

		done, err := s.Exec(ctx, line)
		if err != nil {
			fmt.Fprintf(s.out, "Erro: %s\n", message(err))
		}
		if done {
			return nil
		}
	}
}

// Exec ejecuta una línea de comando. done=true cuando el operador pidió salir.
func (s *Session) Exec(ctx context.Context, line string) (done bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	args := fields[1:]
	switch strings.ToLower(fields[0]) {
	case "buscar":
		return false, s.lookup(args)
	case "lancar", "lançar":
		return false, s.record(args)
	case "desfazer", "corrigir":
		return false, s.undo()
	case "limpar":
		return false, s.clear()
	case "listar":
		return false, s.list()
	case "exportar":
		return false, s.export(ctx, args)
	case "relatorio", "relatório":
		return false, s.report(ctx, args)
	case "ajuda", "help":
		fmt.Fprintln(s.out, help)
		return false, nil
	case "sair", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("%w: comando desconhecido %q", domain.ErrInvalidInput, fields[0])
	}
}

func (s *Session) lookup(args []string) error {
	if len(args) != 1 {
		return usage("buscar <código>")
	}
	p, err := s.uc.LookupProduct(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Descrição: %s\n", p.Description)
	if p.Category != "" {
		fmt.Fprintf(s.out, "Categoria: %s\n", p.Category)
	}
	if len(p.KnownLots) == 0 {
		fmt.Fprintln(s.out, "Sem lotes cadastrados; informe um lote novo.")
		return nil
	}
	for i, lot := range p.KnownLots {
		fmt.Fprintf(s.out, "  #%d %s\n", i+1, lot)
	}
	return nil
}

func (s *Session) record(args []string) error {
	if len(args) != 3 {
		return usage("lancar <código> <lote|#n> <quantidade>")
	}
	req := dto.RecordCountRequest{Code: args[0], NewLot: args[1], Quantity: args[2]}
	if strings.HasPrefix(args[1], "#") {
		lot, err := s.knownLot(args[0], args[1][1:])
		if err != nil {
			return err
		}
		req.SelectedLot, req.NewLot = lot, ""
	}
	res, err := s.uc.Record(s.operator, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Lançado %d em %s / %s (total %d)\n", res.Quantity, res.Code, res.Lot, res.Total)
	return nil
}

func (s *Session) knownLot(code, index string) (string, error) {
	p, err := s.uc.LookupProduct(code)
	if err != nil {
		return "", err
	}
	n, err := strconv.Atoi(index)
	if err != nil || n < 1 || n > len(p.KnownLots) {
		return "", fmt.Errorf("%w: lote #%s não existe para %s", domain.ErrEmptyLot, index, p.Code)
	}
	return p.KnownLots[n-1], nil
}

func (s *Session) undo() error {
	entry, err := s.uc.UndoLast(s.operator)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Corrigido: %s / %s (-%d)\n", entry.Code, entry.Lot, entry.Quantity)
	return nil
}

func (s *Session) clear() error {
	if !s.AllowClear {
		return fmt.Errorf("%w: apenas supervisores podem limpar", domain.ErrForbidden)
	}
	s.uc.Clear(s.operator)
	fmt.Fprintln(s.out, "Lançamentos limpos.")
	return nil
}

func (s *Session) list() error {
	res, err := s.uc.List(s.operator)
	if err != nil {
		return err
	}
	if len(res.Lines) == 0 {
		fmt.Fprintln(s.out, "Nenhum registro contado.")
		return nil
	}
	for _, l := range res.Lines {
		fmt.Fprintf(s.out, "Código: %s | Descrição: %s | Lote: %s | Quantidade: %d\n", l.Code, l.Description, l.Lot, l.Quantity)
	}
	return nil
}

func (s *Session) export(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("exportar <rodada> <tipo>")
	}
	res, err := s.uc.Export(ctx, s.operator, dto.ExportRequest{Round: args[0], MaterialType: args[1]})
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Arquivo exportado como %s\n", res.FileName)
	return nil
}

func (s *Session) report(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("relatorio <rodada> <tipo>")
	}
	res, err := s.uc.Report(ctx, s.operator, dto.ExportRequest{Round: args[0], MaterialType: args[1]})
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Relatório gerado: %s\n", res.FileName)
	return nil
}

func usage(u string) error {
	return fmt.Errorf("%w: uso: %s", domain.ErrInvalidInput, u)
}

// message devuelve el texto para el operador sin el prefijo técnico de los errores de entrada.
func message(err error) string {
	if errors.Is(err, domain.ErrInvalidInput) {
		return strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": ")
	}
	return err.Error()
}
