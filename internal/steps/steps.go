package steps

import "github.com/cucumber/godog"

// Register binds every phrase the suite understands, one handler per phrase.
func Register(sc *godog.ScenarioContext) {
	// Base
	sc.Step(`^I switch to the new browser tab$`, switchToNewTab)
	sc.Step(`^I wait for (\d+) seconds$`, waitForSeconds)

	// Homepage
	sc.Step(`^I navigate to the webdriveruniversity homepage$`, navigateToHomepage)
	sc.Step(`^I navigate to the webdriveruniversity login page$`, navigateToLoginPage)
	sc.Step(`^I click on the contact us button$`, clickOnContactUsButton)
	sc.Step(`^I click on the login portal button$`, clickOnLoginPortalButton)

	// Contact us
	sc.Step(`^I type a first name$`, typeFirstName)
	sc.Step(`^I type a last name$`, typeLastName)
	sc.Step(`^I enter an email address$`, enterEmailAddress)
	sc.Step(`^I type a comment$`, typeComment)
	sc.Step(`^I click on the submit button$`, clickOnSubmitButton)
	sc.Step(`^I should be presented with a successful contact us submission message$`, shouldSeeSuccessfulSubmission)
	sc.Step(`^I should be presented with a unsuccessful contact us message$`, shouldSeeUnsuccessfulSubmission)
	sc.Step(`^I type a specific first name "([^"]*)"$`, typeSpecificFirstName)
	sc.Step(`^I type a specific last name "([^"]*)"$`, typeSpecificLastName)
	sc.Step(`^I enter a specific email address "([^"]*)"$`, enterSpecificEmailAddress)
	sc.Step(`^I type specific text "([^"]*)" and a number (-?\d+) within the comment input field$`, typeSpecificTextAndNumber)
	sc.Step(`^I type a random first name$`, typeRandomFirstName)
	sc.Step(`^I type a random last name$`, typeRandomLastName)
	sc.Step(`^I enter a random email address$`, enterRandomEmailAddress)
	sc.Step(`^I type a random comment$`, typeRandomComment)
	sc.Step(`^I type a first name (\S+) and a last name (\S+)$`, typeFirstAndLastName)
	sc.Step(`^I type a email address "([^"]*)" and a comment "([^"]*)"$`, typeEmailAddressAndComment)
	sc.Step(`^I should be presented with header text "([^"]*)"$`, shouldSeeHeaderText)

	// Login
	sc.Step(`^I type a username (\S+)$`, typeUsername)
	sc.Step(`^I type a password (\S+)$`, typePassword)
	sc.Step(`^I click on the login button$`, clickOnLoginButton)
	sc.Step(`^I should be presented with an alert box which contains text "([^"]*)"$`, shouldSeeAlert)
}
