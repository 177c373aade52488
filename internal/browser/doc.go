// Package browser hides the page-loading machinery behind a small tab API.
//
// Two drivers are provided:
//   - RodDriver runs a headless Chromium through go-rod, for pages that
//     render their listings with JavaScript
//   - StaticDriver fetches HTML with colly and queries it with goquery
//
// # Usage
//
//	driver, err := browser.New(ctx, browser.KindRod, browser.Options{
//	    Headless: true,
//	    Timeout:  45 * time.Second,
//	})
//	if err != nil {
//	    return err
//	}
//	defer driver.Close()
//
//	tab, err := driver.OpenTab(ctx)
//	if err != nil {
//	    return err
//	}
//	defer tab.Close()
//
//	if err := tab.Navigate(pageURL); err != nil {
//	    return err
//	}
//	links, err := tab.Elements("a.download")
//	if errors.Is(err, browser.ErrElementNotFound) {
//	    // nothing on the page
//	}
package browser
