package main

import (
	"errors"
	"fmt"
	"io/ioutil"
	"strings"
	"sync"

	"github.com/ei-projects/prefixcode/pkg/analysis"
	"github.com/ei-projects/prefixcode/pkg/bitpack"
	"github.com/ei-projects/prefixcode/pkg/charset"
	"github.com/ei-projects/prefixcode/pkg/prefixcode"
	"github.com/spf13/cobra"
)

func newCoderCmds() []*cobra.Command {
	var analyzeCmd = &cobra.Command{
		Use:   "analyze <source>",
		Short: "Print symbol statistics, entropy and the ASCII/Hartley comparison",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := analyzeSource(cmd, args[0])
			if err != nil {
				return err
			}
			report := newAnalysisReport(res)
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			report.writeText(cmd.OutOrStdout())
			return nil
		},
	}
	analyzeCmd.Flags().Bool("json", false, "Print result as JSON")

	var codeCmd = &cobra.Command{
		Use:   "code <source>",
		Short: "Print the code table of the source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			method, _ := cmd.Flags().GetString("method")
			res, table, err := sourceTable(cmd, args[0], method)
			if err != nil {
				return err
			}
			report := newCodeReport(method, table, res.Entropy)
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			report.writeText(cmd.OutOrStdout())
			return nil
		},
	}
	addMethodFlag(codeCmd)
	codeCmd.Flags().Bool("json", false, "Print result as JSON")

	var encodeCmd = &cobra.Command{
		Use:   "encode <source> <message>",
		Short: "Encode a message with the code built from the source",
		Args:  cobra.ExactArgs(2),
		RunE:  runEncode,
	}
	addMethodFlag(encodeCmd)
	encodeCmd.Flags().Bool("normalize", false,
		"Lower-case the message and drop symbols outside the alphabet before encoding")
	encodeCmd.Flags().StringP("output", "o", "", "Write the bits packed into this file")

	var decodeCmd = &cobra.Command{
		Use:   "decode <source> [bits]",
		Short: "Decode a bit string with the code built from the source",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runDecode,
	}
	addMethodFlag(decodeCmd)
	decodeCmd.Flags().StringP("input", "i", "", "Read packed bits from this file")
	decodeCmd.Flags().String("output-charset", charset.UTF8,
		fmt.Sprintf("Charset of the decoded message: %s", strings.Join(charset.Names(), ", ")))

	var compareCmd = &cobra.Command{
		Use:   "compare <source>",
		Short: "Build both codes of the source and compare their efficiency",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompare,
	}

	return []*cobra.Command{analyzeCmd, codeCmd, encodeCmd, decodeCmd, compareCmd}
}

func sourceTable(cmd *cobra.Command, path, method string) (*analysis.Result, *prefixcode.CodeTable, error) {
	res, err := analyzeSource(cmd, path)
	if err != nil {
		return nil, nil, err
	}
	table, err := buildTable(method, res.Symbols)
	if err != nil {
		return nil, nil, err
	}
	return res, table, nil
}

func runEncode(cmd *cobra.Command, args []string) error {
	method, _ := cmd.Flags().GetString("method")
	res, table, err := sourceTable(cmd, args[0], method)
	if err != nil {
		return err
	}

	message := args[1]
	if normalize, _ := cmd.Flags().GetBool("normalize"); normalize {
		message = analysis.ValidText(message, res.Alphabet)
	}
	if missing := missingSymbols(message, table); len(missing) > 0 {
		log.Warnf("Symbols %q are not in the %s alphabet and were dropped",
			string(missing), res.Alphabet.Name())
	}
	bits := prefixcode.Encode(message, table)

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		fmt.Fprintln(cmd.OutOrStdout(), bits)
		return nil
	}
	packed, err := bitpack.Pack(bits)
	if err != nil {
		return err
	}
	if err := ioutil.WriteFile(output, packed, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	log.Infof("Wrote %d bits (%d bytes) to %s", len(bits), len(packed), output)
	return nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	method, _ := cmd.Flags().GetString("method")
	input, _ := cmd.Flags().GetString("input")

	var bits string
	switch {
	case input != "" && len(args) == 2:
		return errors.New("bits argument and --input are mutually exclusive. " +
			"Try 'prefixcode decode -h' for more information")
	case input != "":
		data, err := ioutil.ReadFile(input)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", input, err)
		}
		if bits, err = bitpack.Unpack(data); err != nil {
			return fmt.Errorf("failed to unpack %s: %w", input, err)
		}
	case len(args) == 2:
		bits = args[1]
		if err := bitpack.Validate(bits); err != nil {
			return err
		}
	default:
		return errors.New("either bits argument or --input is required. " +
			"Try 'prefixcode decode -h' for more information")
	}

	_, table, err := sourceTable(cmd, args[0], method)
	if err != nil {
		return err
	}
	outCharset, _ := cmd.Flags().GetString("output-charset")
	out, err := charset.Encode(prefixcode.Decode(bits, table)+"\n", outCharset)
	if err != nil {
		return fmt.Errorf("failed to encode decoded message: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func runCompare(cmd *cobra.Command, args []string) error {
	res, err := analyzeSource(cmd, args[0])
	if err != nil {
		return err
	}

	names := []string{methodHuffman, methodShannonFano}
	reports := make([]*codeReport, len(names))
	errs := make([]error, len(names))
	var wg sync.WaitGroup
	for i := range names {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			table, err := buildTable(names[i], res.Symbols)
			if err != nil {
				errs[i] = err
				return
			}
			reports[i] = newCodeReport(names[i], table, res.Entropy)
		}(i)
	}
	wg.Wait()

	for i := range names {
		if errs[i] != nil {
			return errs[i]
		}
		reports[i].writeSummary(cmd.OutOrStdout())
	}
	return nil
}
