package mcp

import "github.com/mark3labs/mcp-go/mcp"

var searchCodeTool = mcp.NewTool("search_code",
	mcp.WithDescription("Search the indexed repository semantically. Returns the files whose contents are closest to the query."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
	mcp.WithString("language",
		mcp.Description("Only return files of this language, e.g. python, rust, move"),
	),
)

var getFileStructureTool = mcp.NewTool("get_file_structure",
	mcp.WithDescription("Get the parsed structure of one indexed file: functions, classes, imports, sections, config keys."),
	mcp.WithString("file_path",
		mcp.Required(),
		mcp.Description("Path to the file relative to the repository root"),
	),
)

var indexStatsTool = mcp.NewTool("index_stats",
	mcp.WithDescription("Report how many files are indexed and which embedding model built the index."),
)
