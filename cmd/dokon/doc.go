// Package cmd/dokon provides the Dokon storefront terminal client.
//
// Install once:
//
//	go install github.com/shashiranjanraj/dokon/cmd/dokon@latest
//
// Then point it at a backend (API_BASE_URL in .env or config/app.json):
//
//	dokon login jo@example.com        # prompts for the password
//	dokon products                    # browse the catalogue
//	dokon products --search shoe
//	dokon cart:add 7                  # one unit of product 7
//	dokon cart                        # show lines and total
//	dokon checkout                    # cart → order
//	dokon orders
//	dokon order:cancel 42
//
// The session token is persisted to STATE_FILE (default .dokon/session.json)
// so consecutive invocations stay signed in.
package main
