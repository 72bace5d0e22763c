package store

import (
	"time"

	"github.com/sciencewithkalana/portal/core/catalog"
	"github.com/sciencewithkalana/portal/core/liveclass"
	"github.com/sciencewithkalana/portal/core/notice"
)

// Built-in defaults written back on first read of an empty slot.

var seedDate = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

func seedClasses() []catalog.Class {
	return []catalog.Class{
		{
			ID:                 "cls-6-001",
			Grade:              6,
			Name:               "Grade 6 Science - Monthly",
			NameSinhala:        "6 ශ්‍රේණිය විද්‍යාව - මාසික",
			Description:        "Comprehensive science education for Grade 6 students covering all syllabus topics",
			DescriptionSinhala: "6 ශ්‍රේණියේ සිසුන් සඳහා සම්පූර්ණ විද්‍යා අධ්‍යාපනය - සියලුම පාඩම් ආවරණය කරමින්",
			Price:              1500,
			Type:               catalog.TypeMonthly,
			IsActive:           true,
			Lessons: []catalog.Lesson{
				{
					ID:           "les-6-001-1",
					ClassID:      "cls-6-001",
					Title:        "Introduction to Science",
					TitleSinhala: "විද්‍යාවට හඳුන්වාදීම",
					Description:  "Basic concepts and scientific method",
					YoutubeURL:   "https://www.youtube.com/embed/dQw4w9WgXcQ",
					Duration:     "45 min",
					Order:        1,
					IsActive:     true,
					IsFree:       true,
				},
				{
					ID:           "les-6-001-2",
					ClassID:      "cls-6-001",
					Title:        "Living and Non-living Things",
					TitleSinhala: "ජීවී හා අජීවී දේ",
					Description:  "Characteristics of living organisms",
					YoutubeURL:   "https://www.youtube.com/embed/dQw4w9WgXcQ",
					Duration:     "50 min",
					Order:        2,
					IsActive:     true,
				},
			},
			EnrolledStudents: []string{},
			CreatedAt:        seedDate,
		},
		{
			ID:                 "cls-7-001",
			Grade:              7,
			Name:               "Grade 7 Science - Monthly",
			NameSinhala:        "7 ශ්‍රේණිය විද්‍යාව - මාසික",
			Description:        "Advanced science concepts for Grade 7 with practical experiments",
			DescriptionSinhala: "7 ශ්‍රේණිය සඳහා උසස් විද්‍යා සංකල්ප - ප්‍රායෝගික පර්යේෂණ සමඟ",
			Price:              1800,
			Type:               catalog.TypeMonthly,
			IsActive:           true,
			Lessons:            []catalog.Lesson{},
			EnrolledStudents:   []string{},
			CreatedAt:          seedDate,
		},
		{
			ID:                 "cls-10-001",
			Grade:              10,
			Name:               "Grade 10 Science - O/L Prep",
			NameSinhala:        "10 ශ්‍රේණිය විද්‍යාව - සා.පෙළ සූදානම",
			Description:        "Intensive O/L preparation with past paper discussions",
			DescriptionSinhala: "පසුගිය ප්‍රශ්න පත්‍ර සාකච්ඡා සමඟ දැඩි සා.පෙළ සූදානම",
			Price:              3000,
			Type:               catalog.TypeMonthly,
			IsActive:           true,
			Lessons:            []catalog.Lesson{},
			EnrolledStudents:   []string{},
			CreatedAt:          seedDate,
		},
		{
			ID:                 "cls-11-001",
			Grade:              11,
			Name:               "Grade 11 Science - O/L Final",
			NameSinhala:        "11 ශ්‍රේණිය විද්‍යාව - සා.පෙළ අවසාන",
			Description:        "Final year O/L preparation with comprehensive revision",
			DescriptionSinhala: "සම්පූර්ණ නැවත සංස්කරණය සමඟ අවසාන වසර සා.පෙළ සූදානම",
			Price:              3500,
			Type:               catalog.TypeMonthly,
			IsActive:           true,
			Lessons:            []catalog.Lesson{},
			EnrolledStudents:   []string{},
			CreatedAt:          seedDate,
		},
		{
			ID:                 "cls-sp-001",
			Grade:              10,
			Name:               "Special O/L Revision Group",
			NameSinhala:        "විශේෂ සා.පෙළ නැවත සංස්කරණ කණ්ඩායම",
			Description:        "Intensive 3-month revision program for O/L students",
			DescriptionSinhala: "සා.පෙළ සිසුන් සඳහා දැඩි මාස 3 නැවත සංස්කරණ වැඩසටහන",
			Price:              8000,
			Type:               catalog.TypeSpecial,
			IsActive:           true,
			Lessons:            []catalog.Lesson{},
			EnrolledStudents:   []string{},
			CreatedAt:          seedDate,
		},
		{
			ID:                 "cls-sp-002",
			Grade:              11,
			Name:               "O/L Model Paper Class",
			NameSinhala:        "සා.පෙළ නමුණා ප්‍රශ්න පත්‍ර පන්තිය",
			Description:        "Weekly model paper discussions and exam techniques",
			DescriptionSinhala: "සතිපතා නමුණා ප්‍රශ්න පත්‍ර සාකච්ඡා සහ විභාග ක්‍රම",
			Price:              5000,
			Type:               catalog.TypeSpecial,
			IsActive:           true,
			Lessons:            []catalog.Lesson{},
			EnrolledStudents:   []string{},
			CreatedAt:          seedDate,
		},
	}
}

func seedNotices() []notice.Notice {
	expires1 := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	expires2 := time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC)
	return []notice.Notice{
		{
			ID:        "not-001",
			Title:     "Welcome to Science with Kalana!",
			Message:   "New classes starting from February 2026. Register now!",
			Type:      notice.TypeGeneral,
			CreatedAt: time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
			ExpiresAt: &expires1,
		},
		{
			ID:        "not-002",
			Title:     "O/L Special Batch Registration Open",
			Message:   "Limited seats available for Grade 10-11 special revision classes",
			Type:      notice.TypeUrgent,
			CreatedAt: time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC),
			ExpiresAt: &expires2,
		},
	}
}

func seedLiveClasses() []liveclass.LiveClass {
	return []liveclass.LiveClass{
		{
			ID:          "live-001",
			ClassID:     "cls-10-001",
			Title:       "O/L Physics Fundamentals",
			Date:        "2026-02-05",
			Time:        "18:00",
			Duration:    "2 hours",
			MeetingLink: "https://zoom.us/j/example",
			IsActive:    true,
		},
		{
			ID:          "live-002",
			ClassID:     "cls-11-001",
			Title:       "Chemistry Revision - Acids & Bases",
			Date:        "2026-02-07",
			Time:        "16:00",
			Duration:    "1.5 hours",
			MeetingLink: "https://zoom.us/j/example2",
			IsActive:    true,
		},
	}
}
