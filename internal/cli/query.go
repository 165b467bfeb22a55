package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/mixq/internal/mixed"
	"github.com/roach88/mixq/internal/query"
	"github.com/roach88/mixq/internal/querysql"
	"github.com/roach88/mixq/internal/store"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	Database string
	Where    string // named predicate, empty = TRUEPREDICATE
	Sort     string // asc | desc, empty = unsorted
	Distinct bool
	Limit    int // 0 = no limit
	Count    bool
	Explain  bool
}

// RecordView is the output form of one record.
type RecordView struct {
	Seq   int64  `json:"seq"`
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// QueryResult is the output of the query command.
type QueryResult struct {
	Query   string       `json:"query"`
	Count   int          `json:"count"`
	Pushed  bool         `json:"pushed"`
	Scanned int          `json:"scanned"`
	Records []RecordView `json:"records,omitempty"`
}

// ExplainResult describes how a query would execute.
type ExplainResult struct {
	Query  string `json:"query"`
	SQL    string `json:"sql,omitempty"`
	Params []any  `json:"params,omitempty"`
	Pushed bool   `json:"pushed"`
	Reason string `json:"reason,omitempty"`
}

// String renders the text form.
func (e ExplainResult) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Query:  %s\n", e.Query)
	if e.Pushed {
		fmt.Fprintf(&sb, "SQL:    %s\n", e.SQL)
		fmt.Fprintf(&sb, "Params: %v", e.Params)
	} else {
		fmt.Fprintf(&sb, "Filter evaluated in memory: %s", e.Reason)
	}
	return sb.String()
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query the mixed field",
		Long: `Run a query over the seeded records.

--where takes a named predicate: ` + strings.Join(query.NamedPredicates(), ", ") + `.
Descriptors apply as sort, then distinct, then limit.

Exit codes:
  0 - Query executed
  1 - Query rejected (e.g. is_empty on the scalar field)
  2 - Command error

Examples:
  mixq query --where is_null
  mixq query --sort asc --distinct --limit 10
  mixq query --count
  mixq query --where is_not_null --explain`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")
	cmd.Flags().StringVar(&opts.Where, "where", "", "named predicate")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "sort order (asc|desc)")
	cmd.Flags().BoolVar(&opts.Distinct, "distinct", false, "keep the first record of each distinct value")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of records")
	cmd.Flags().BoolVar(&opts.Count, "count", false, "print the number of matches only")
	cmd.Flags().BoolVar(&opts.Explain, "explain", false, "show the SQL pushdown instead of executing")

	return cmd
}

func runQuery(opts *QueryOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	log := opts.logger()
	out := opts.formatter(cmd)

	q, err := opts.build()
	if err != nil {
		return reject(out, err)
	}
	out.VerboseLog("query: %s", q)

	if opts.Explain {
		return out.Success(explain(q))
	}

	dbPath := opts.database(opts.Database)
	st, err := store.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()

	if opts.Count && len(q.Descriptors) == 0 {
		n, err := st.Count(ctx, q.Filter)
		if err == nil {
			return out.Success(n)
		}
		if !querysql.IsUnsupported(err) {
			return WrapExitError(ExitCommandError, "count failed", err)
		}
		log.Debug("count not pushed down", "query", q.String(), "error", err)
	}

	res, err := opts.newExecutor().Execute(ctx, st, q)
	if err != nil {
		return reject(out, err)
	}
	if opts.Count {
		return out.Success(res.Len())
	}

	result := QueryResult{
		Query:   res.Query,
		Count:   res.Len(),
		Pushed:  res.Pushed,
		Scanned: res.Scanned,
		Records: make([]RecordView, 0, res.Len()),
	}
	for _, r := range res.Records {
		result.Records = append(result.Records, viewRecord(r))
	}
	if opts.Format == "json" {
		return out.Success(result)
	}
	return writeRecordTable(cmd, result)
}

// build assembles the query from flags.
func (o *QueryOptions) build() (*query.Query, error) {
	field := mixed.FieldMixed
	b := query.NewBuilder(query.DefaultSchema())
	if o.Where != "" {
		p, err := query.Named(o.Where, field)
		if err != nil {
			return nil, err
		}
		b.Where(p)
	}
	if o.Sort != "" {
		order, err := query.ParseOrder(o.Sort)
		if err != nil {
			return nil, err
		}
		b.Sort(field, order)
	}
	if o.Distinct {
		b.Distinct(field)
	}
	if o.Limit != 0 {
		b.Limit(o.Limit)
	}
	return b.Build()
}

func explain(q *query.Query) ExplainResult {
	res := ExplainResult{Query: q.String()}
	sqlText, params, err := querysql.NewSQLCompiler().Compile(q.Filter)
	if err != nil {
		res.Reason = err.Error()
		return res
	}
	res.SQL, res.Params, res.Pushed = sqlText, params, true
	return res
}

// reject reports a query execution error. Validation failures exit 1,
// everything else exits 2.
func reject(out *OutputFormatter, err error) error {
	code := ErrorCode(err)
	if fmtErr := out.Error(code, err.Error(), nil); fmtErr != nil {
		return fmtErr
	}
	exit := ExitCommandError
	if code == CodeInvalidArgument || code == CodeQuotaExceeded {
		exit = ExitFailure
	}
	return WrapExitError(exit, "query failed", err)
}

func viewRecord(r mixed.Record) RecordView {
	view := RecordView{Seq: r.Seq, ID: r.ID, Kind: r.Mixed.Kind().String()}
	if !r.Mixed.IsNull() {
		view.Value = r.Mixed.String()
	}
	return view
}

func writeRecordTable(cmd *cobra.Command, result QueryResult) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SEQ\tKIND\tVALUE\tID\n")
	for _, r := range result.Records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.Seq, r.Kind, r.Value, r.ID)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d record(s)  %s\n", result.Count, result.Query)
	return nil
}
