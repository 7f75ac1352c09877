package service

import "github.com/dpshade/pocket-analyst/internal/models"

// InstallDefaults seeds the library with the example template catalog. It
// only runs against an empty library: if any template record already exists
// the whole operation is a no-op, so repeat runs never clobber user-created
// templates.
func (s *Service) InstallDefaults() (int, error) {
	exists, err := s.storage.HasTemplates()
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, nil
	}

	for _, tmpl := range defaultCatalog() {
		if _, err := s.SaveTemplate(tmpl); err != nil {
			return 0, err
		}
		s.logger.Info("created default template", "name", tmpl.Name)
	}
	return len(defaultCatalog()), nil
}

// defaultCatalog returns the built-in example templates.
func defaultCatalog() []*models.Template {
	return []*models.Template{
		{
			Name:          "Document Summary",
			Description:   "Summarize a document with key points and main ideas",
			SystemMessage: "You are an expert document summarizer. Your task is to create concise, accurate summaries that capture the most important information and main ideas.",
			Body:          "Please summarize the following document, focusing on the key points, main arguments, and important conclusions. Keep the summary clear and concise.\n\n$document",
			Parameters: map[string]string{
				"document": "The full text of the document to summarize",
			},
			Tags: []string{"summarization", "content", "general"},
			Examples: []models.Example{
				{
					Parameters: map[string]string{
						"document": "This is a sample document that discusses climate change...",
					},
					Output: "This document explores the causes and impacts of climate change...",
				},
			},
			Version: models.DefaultVersion,
		},
		{
			Name:          "Code Review",
			Description:   "Analyze code for bugs, improvements, and best practices",
			SystemMessage: "You are an expert software engineer conducting a thorough code review. Focus on identifying bugs, security vulnerabilities, performance issues, and opportunities for improvement.",
			Body:          "Please review the following $language code for potential issues, bugs, security vulnerabilities, and areas for improvement. Focus on both functionality and adherence to best practices.\n\n```$language\n$code\n```",
			Parameters: map[string]string{
				"language": "The programming language of the code",
				"code":     "The code to review",
			},
			Tags: []string{"programming", "code", "review"},
			Examples: []models.Example{
				{
					Parameters: map[string]string{
						"language": "python",
						"code":     "def calculate_average(numbers):\n    total = 0\n    for num in numbers:\n        total += num\n    return total / len(numbers)",
					},
					Output: "The code correctly calculates an average but doesn't handle empty lists which would cause a division by zero error...",
				},
			},
			Version: models.DefaultVersion,
		},
		{
			Name:          "Data Analysis",
			Description:   "Analyze and extract insights from structured data",
			SystemMessage: "You are a data analysis expert skilled at interpreting data and extracting meaningful insights. Focus on patterns, anomalies, and actionable conclusions.",
			Body:          "Below is a dataset in $format format. Please analyze this data and provide insights on:\n1. Key trends and patterns\n2. Notable anomalies or outliers\n3. Meaningful correlations or relationships\n4. Actionable insights for business decisions\n\n$data",
			Parameters: map[string]string{
				"format": "The format of the data (CSV, JSON, etc.)",
				"data":   "The structured data to analyze",
			},
			Tags: []string{"data", "analysis", "business"},
			Examples: []models.Example{
				{
					Parameters: map[string]string{
						"format": "CSV",
						"data":   "date,revenue,customers\n2023-01-01,5000,120\n2023-01-02,5200,125\n...",
					},
					Output: "Analysis of the sales data reveals a clear upward trend in both revenue and customer count...",
				},
			},
			Version: models.DefaultVersion,
		},
		{
			Name:          "Content Classification",
			Description:   "Classify content into predefined categories",
			SystemMessage: "You are a content classification expert. Your task is to accurately categorize content based on its characteristics and subject matter.",
			Body:          "Please classify the following content into the most appropriate category from the list provided. Explain your reasoning briefly.\n\nCategories: $categories\n\nContent to classify:\n$content",
			Parameters: map[string]string{
				"categories": "Comma-separated list of classification categories",
				"content":    "The content to classify",
			},
			Tags: []string{"classification", "content", "categorization"},
			Examples: []models.Example{
				{
					Parameters: map[string]string{
						"categories": "Technology, Business, Health, Entertainment, Politics",
						"content":    "Apple announced its new iPhone model yesterday, featuring improvements to the camera system and battery life.",
					},
					Output: "Category: Technology\nReasoning: The content describes a product announcement from a technology company (Apple) about a technological device (iPhone).",
				},
			},
			Version: models.DefaultVersion,
		},
		{
			Name:          "Product Description",
			Description:   "Generate compelling product descriptions for e-commerce",
			SystemMessage: "You are a skilled copywriter specializing in e-commerce product descriptions. Create compelling, accurate, and SEO-friendly product descriptions that highlight benefits and features.",
			Body:          "Please write a compelling product description for an e-commerce site based on the following information:\n\nProduct Name: $name\nProduct Category: $category\nKey Features: $features\nTarget Audience: $audience\nPrice Point: $price\nBrand Tone: $tone",
			Parameters: map[string]string{
				"name":     "The name of the product",
				"category": "The product category",
				"features": "The key features and specifications",
				"audience": "Description of the target customers",
				"price":    "Price point (budget, mid-range, premium)",
				"tone":     "The brand's tone of voice",
			},
			Tags: []string{"marketing", "e-commerce", "copywriting"},
			Examples: []models.Example{
				{
					Parameters: map[string]string{
						"name":     "UltraFlex Pro Running Shoes",
						"category": "Athletic Footwear",
						"features": "Lightweight mesh upper, responsive foam cushioning, durable rubber outsole, reflective elements",
						"audience": "Serious runners aged 25-45",
						"price":    "Premium ($120-150)",
						"tone":     "Professional, performance-focused, inspiring",
					},
					Output: "Elevate your running performance with the UltraFlex Pro Running Shoes, engineered for serious athletes who demand excellence...",
				},
			},
			Version: models.DefaultVersion,
		},
		{
			Name:          "Chain of Thought Reasoning",
			Description:   "Solve complex problems using step-by-step reasoning",
			SystemMessage: "You are an expert problem solver with a methodical approach. Break down complex problems into step-by-step reasoning to arrive at well-reasoned conclusions.",
			Body:          "Please solve the following $domain problem. Use chain-of-thought reasoning to work through the solution step by step, explaining your thought process clearly.\n\nProblem: $problem",
			Parameters: map[string]string{
				"domain":  "The problem domain (e.g., math, logic, business)",
				"problem": "The problem statement to solve",
			},
			Tags: []string{"reasoning", "problem-solving", "step-by-step"},
			Examples: []models.Example{
				{
					Parameters: map[string]string{
						"domain":  "mathematical",
						"problem": "A store is offering a 20% discount on a product that originally costs $85. There is also a 5% sales tax applied after the discount. What is the final price?",
					},
					Output: "I'll solve this step by step:\n1. Original price: $85\n2. 20% discount: $85 × 0.20 = $17\n3. Discounted price: $85 - $17 = $68\n4. 5% sales tax: $68 × 0.05 = $3.40\n5. Final price: $68 + $3.40 = $71.40\nTherefore, the final price is $71.40.",
				},
			},
			Version: models.DefaultVersion,
		},
	}
}
