/*
Package lumina is the client-side core of an AI-assisted data workspace.

It covers two concerns that every front-end of the workspace shares: turning
heterogeneous document values into display strings, and managing the
lifecycle of requests sent to a remote AI service.

# Concept

Each AI operation kind (table suggestions, assisted writing, template
suggestions, mass delete, data check, data type suggestion) owns a session.
A session holds at most one live request. Issuing a new request swaps in a
fresh container before anything is transmitted, so a late response of a
superseded request is never applied. Every container is three-valued:
pending, resolved with a payload, or failed with a message.

Failures reported by the service itself land in the session only. Transport
failures are additionally published to a process-wide notifier.

# Usage

	svc := rest.New("https://app.example.com", rest.WithToken(token))
	assistant := lumina.New(svc, lumina.WithNotifier(notifier))
	defer assistant.Close(context.Background())

	c := assistant.FetchTemplateSuggestions(ctx, domain.TemplateSuggestionRequest{
		ProjectDescription: "sales pipeline",
	})
	result, err := c.Wait(ctx)
	if err != nil {
		return err // superseded or ctx done
	}
	if res, ok := result.Value(); ok {
		fmt.Println(res.BestMatchTemplates)
	} else {
		fmt.Println("failed:", result.Message())
	}

Formatting lives in package format; see format.Format and format.FormatDocument.
*/
package lumina
