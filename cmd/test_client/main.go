package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	endpoint := flag.String("endpoint", "http://localhost:8080/mcp/stream", "MCP streamable HTTP endpoint")
	query := flag.String("query", "golang", "vacancy_search query")
	flag.Parse()

	ctx := context.Background()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "hh-vacancies-test-client",
		Version: "0.1.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: *endpoint,
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Connected to server (session ID: %s)\n", session.ID())

	testListTools(ctx, session)
	testVacancySearch(ctx, session, *query)
	testStoredVacancies(ctx, session)

	fmt.Println("\nAll tests completed")
}

func testListTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: list tools")

	res, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		log.Printf("list tools failed: %v", err)
		return
	}
	for _, tool := range res.Tools {
		fmt.Printf("  %s: %s\n", tool.Name, tool.Description)
	}
}

func testVacancySearch(ctx context.Context, session *mcp.ClientSession, query string) {
	fmt.Println("\nTEST: vacancy_search")

	params := &mcp.CallToolParams{
		Name: "vacancy_search",
		Arguments: map[string]any{
			"query":        query,
			"count":        5,
			"salary_range": "100000",
		},
	}

	result, err := session.CallTool(ctx, params)
	if err != nil {
		log.Printf("vacancy_search failed: %v", err)
		return
	}

	printResult(result)
	fmt.Println("vacancy_search passed")
}

func testStoredVacancies(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: stored_vacancies")

	params := &mcp.CallToolParams{
		Name: "stored_vacancies",
		Arguments: map[string]any{
			"currency": "RUR",
			"limit":    3,
		},
	}

	result, err := session.CallTool(ctx, params)
	if err != nil {
		log.Printf("stored_vacancies failed: %v", err)
		return
	}

	printResult(result)
	fmt.Println("stored_vacancies passed")
}

func printResult(res *mcp.CallToolResult) {
	if res.IsError {
		fmt.Println("tool returned an error:")
	}
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Println(txt.Text)
		}
	}
}
