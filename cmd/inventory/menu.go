package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andresuchdata/storeops/backend-go/internal/app"
	"github.com/andresuchdata/storeops/backend-go/internal/inventory"
	"github.com/urfave/cli/v2"
)

const menuText = `
==== Inventory reports ====
1. All reports
2. Urgent stock
3. Expiring foods
4. Bestsellers
5. Sales summary
6. Management analysis
7. Overall status
0. Exit
Select: `

// renderer is the part of ReportService the menu needs.
type renderer interface {
	Render(ctx context.Context, kind inventory.Kind) (string, error)
}

func runMenu(c *cli.Context) error {
	a, err := build(c, app.Options{})
	if err != nil {
		return err
	}
	defer a.Close()

	return menuLoop(c.Context, a.Reports, c.App.Reader, c.App.Writer)
}

// menuLoop reads choices until 0 or end of input.
func menuLoop(ctx context.Context, reports renderer, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, menuText)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err == nil && choice == 0 {
			fmt.Fprintln(out, "Bye.")
			return nil
		}

		var (
			kind inventory.Kind
			ok   bool
		)
		if err == nil {
			kind, ok = inventory.KindForMenu(choice)
		}
		if !ok {
			fmt.Fprintln(out, "Invalid choice, enter a number from 0 to 7.")
			continue
		}

		text, err := reports.Render(ctx, kind)
		if err != nil {
			fmt.Fprintf(out, "Report failed: %v\n", err)
			continue
		}
		fmt.Fprint(out, text)
	}
}
