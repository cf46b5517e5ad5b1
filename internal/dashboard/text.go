package dashboard

import "fmt"

const (
	pageTitle = "Analysis of the Unemployment Rate in Saudi Arabia"

	introSource = "The following dataset was taken from Kaggle, an online data science platform that provides " +
		"free-to-download datasets, data science courses, codes and much more. It shows the unemployment rates " +
		"per education level, nationality and gender in Saudi Arabia. The data was collected from 18 different " +
		"files from the first quarter of 2017 till the second quarter of 2021. The main source is GASTAT."

	leadText = "In order to better understand our data, we plotted a couple of data visualizations of different chart types."

	sidebarIntro  = "We have created a couple of data visualizations in order to better understand our data."
	sidebarScroll = "Scroll down to view the charts."

	downloadLabel = "Download data as CSV"

	selectLabel = "Select the chart type"
)

const (
	captionBarGender = "The bar chart shows a huge unemployment gender gap in Saudi Arabia where the unemployment " +
		"rate for women was more than four times that of men between 2017 Q1 and 2021 Q2. This is probably due to " +
		"the great gender segregation and inequality in Saudi Arabia which was present in the duration between the " +
		"first quarter of 2017 and the second quarter of 2021."

	captionBarNationality = "This bar chart shows a huge unemployment gap between Saudis and non-Saudis. This is " +
		"probably due to the fact that the majority of non-Saudis go to Saudi Arabia to work."

	captionBarDegree = "The maximum unemployment rate was for citizens with a secondary degree level and the minimum " +
		"was for citizens with a doctorate. Primary and Intermediate level citizens, which constitute a small portion " +
		"of the population, have probably dropped out of school to work. This graph shows that in Saudi Arabia, " +
		"having a Bachelor's Degree does not necessarily mean that one will find a job easily. An additional Diploma " +
		"or a Master's Degree can increase the chances of finding a job."

	captionLineOverall = "The line graph shows a fluctuation of the unemployment rates between 2017 Q1 and 2021 Q2, " +
		"where the average unemployment rate reaches a trough in the first quarter of 2020. Then the rate " +
		"dramatically increases till it reaches a peak in the second quarter of 2020 (Peak of COVID-19). This peak " +
		"is expectedly due to the COVID-19 pandemic, and its catastrophic effect on the economy."

	captionLineGender = "The unemployment gap between males and females has been huge since the first quarter of " +
		"2017. However, we can notice a considerable decrease for women just before and after the peak of the " +
		"COVID-19 pandemic, precisely in the first quarter of 2020 and the first quarter of 2021. This sudden " +
		"decrease is explained by King Salman and Prince Mohammad's new agenda which empowers women in Saudi " +
		"Arabia in many different aspects."

	captionLineNationality = "The unemployment gap between Saudi and non-Saudi citizens has also been huge since " +
		"the first quarter of 2017. We can notice that the rate has increased for both between first and second " +
		"quarter of 2020, just by the start of the COVID-19 pandemic. This increase, however, was much steeper for " +
		"non-Saudis who have lost their jobs and faced strict restrictions because of the socio-economic impact of " +
		"the coronavirus."
)

// revealText holds the toggle label and table heading of a reveal key.
// The period placeholder is filled with the dataset's quarter span.
type revealText struct {
	label   string
	heading string
}

func revealTexts(period string) map[RevealKey]revealText {
	return map[RevealKey]revealText{
		RevealGender:      {"Show the grouped data by gender", "Grouped Data by Gender"},
		RevealNationality: {"Show the grouped data by nationality", "Grouped Data by Nationality"},
		RevealDegree:      {"Show the grouped data by degree level", "Grouped Data by Degree Level"},
		RevealQuarter: {
			fmt.Sprintf("Show the grouped data between %s", period),
			fmt.Sprintf("Grouped Data Between %s", period),
		},
		RevealQuarterGender: {
			fmt.Sprintf("Show the grouped data by gender between %s", period),
			fmt.Sprintf("Grouped Data by Gender Between %s", period),
		},
		RevealQuarterNationality: {
			fmt.Sprintf("Show the grouped data by nationality between %s", period),
			fmt.Sprintf("Grouped Data by Nationality Between %s", period),
		},
		RevealQuarterDegree: {
			fmt.Sprintf("Show the grouped data by degree level between %s", period),
			fmt.Sprintf("Grouped Data by Degree Level Between %s", period),
		},
		RevealDegreeGender: {"Show the grouped data by degree level and gender", "Grouped Data by Degree Level and Gender"},
		RevealDegreeQuarter: {
			fmt.Sprintf("Show the grouped data by degree level over time (%s)", period),
			fmt.Sprintf("Grouped Data by Degree Level Between %s", period),
		},
	}
}
